package ast

// Node kinds.
const (
	KindSimplexNoise2D      Kind = "SimplexNoise2D"
	KindSimplexNoise3D      Kind = "SimplexNoise3D"
	KindCellNoise2D         Kind = "CellNoise2D"
	KindCellNoise3D         Kind = "CellNoise3D"
	KindConstant            Kind = "Constant"
	KindSum                 Kind = "Sum"
	KindMultiplier          Kind = "Multiplier"
	KindAbs                 Kind = "Abs"
	KindInverter            Kind = "Inverter"
	KindSqrt                Kind = "Sqrt"
	KindPow                 Kind = "Pow"
	KindOffsetConstant      Kind = "OffsetConstant"
	KindAmplitudeConstant   Kind = "AmplitudeConstant"
	KindClamp               Kind = "Clamp"
	KindSmoothClamp         Kind = "SmoothClamp"
	KindFloor               Kind = "Floor"
	KindSmoothFloor         Kind = "SmoothFloor"
	KindCeiling             Kind = "Ceiling"
	KindSmoothCeiling       Kind = "SmoothCeiling"
	KindMin                 Kind = "Min"
	KindSmoothMin           Kind = "SmoothMin"
	KindMax                 Kind = "Max"
	KindSmoothMax           Kind = "SmoothMax"
	KindNormalizer          Kind = "Normalizer"
	KindCurveMapper         Kind = "CurveMapper"
	KindOffset              Kind = "Offset"
	KindAmplitude           Kind = "Amplitude"
	KindMix                 Kind = "Mix"
	KindMultiMix            Kind = "MultiMix"
	KindScale               Kind = "Scale"
	KindSlider              Kind = "Slider"
	KindRotator             Kind = "Rotator"
	KindAnchor              Kind = "Anchor"
	KindXOverride           Kind = "XOverride"
	KindYOverride           Kind = "YOverride"
	KindZOverride           Kind = "ZOverride"
	KindGradientWarp        Kind = "GradientWarp"
	KindFastGradientWarp    Kind = "FastGradientWarp"
	KindVectorWarp          Kind = "VectorWarp"
	KindDistance            Kind = "Distance"
	KindCube                Kind = "Cube"
	KindEllipsoid           Kind = "Ellipsoid"
	KindCuboid              Kind = "Cuboid"
	KindCylinder            Kind = "Cylinder"
	KindPlane               Kind = "Plane"
	KindAxis                Kind = "Axis"
	KindShell               Kind = "Shell"
	KindAngle               Kind = "Angle"
	KindXValue              Kind = "XValue"
	KindYValue              Kind = "YValue"
	KindZValue              Kind = "ZValue"
	KindTerrain             Kind = "Terrain"
	KindBaseHeight          Kind = "BaseHeight"
	KindCellWallDistance    Kind = "CellWallDistance"
	KindDistanceToBiomeEdge Kind = "DistanceToBiomeEdge"
	KindGradient            Kind = "Gradient"
	KindCache               Kind = "Cache"
	KindCache2D             Kind = "Cache2D"
	KindYSampled            Kind = "YSampled"
	KindSwitch              Kind = "Switch"
	KindSwitchState         Kind = "SwitchState"
	KindPositionsCellNoise  Kind = "PositionsCellNoise"
	KindPositions3D         Kind = "Positions3D"
	KindPositionsPinch      Kind = "PositionsPinch"
	KindPositionsTwist      Kind = "PositionsTwist"
	KindExported            Kind = "Exported"
	KindImported            Kind = "Imported"
	KindPipeline            Kind = "Pipeline"
)

func (*SimplexNoise2D) Kind() Kind { return KindSimplexNoise2D }
func (*SimplexNoise3D) Kind() Kind { return KindSimplexNoise3D }
func (*CellNoise2D) Kind() Kind { return KindCellNoise2D }
func (*CellNoise3D) Kind() Kind { return KindCellNoise3D }
func (*Constant) Kind() Kind { return KindConstant }
func (*Sum) Kind() Kind { return KindSum }
func (*Multiplier) Kind() Kind { return KindMultiplier }
func (*Abs) Kind() Kind { return KindAbs }
func (*Inverter) Kind() Kind { return KindInverter }
func (*Sqrt) Kind() Kind { return KindSqrt }
func (*Pow) Kind() Kind { return KindPow }
func (*OffsetConstant) Kind() Kind { return KindOffsetConstant }
func (*AmplitudeConstant) Kind() Kind { return KindAmplitudeConstant }
func (*Clamp) Kind() Kind { return KindClamp }
func (*SmoothClamp) Kind() Kind { return KindSmoothClamp }
func (*Floor) Kind() Kind { return KindFloor }
func (*SmoothFloor) Kind() Kind { return KindSmoothFloor }
func (*Ceiling) Kind() Kind { return KindCeiling }
func (*SmoothCeiling) Kind() Kind { return KindSmoothCeiling }
func (*Min) Kind() Kind { return KindMin }
func (*SmoothMin) Kind() Kind { return KindSmoothMin }
func (*Max) Kind() Kind { return KindMax }
func (*SmoothMax) Kind() Kind { return KindSmoothMax }
func (*Normalizer) Kind() Kind { return KindNormalizer }
func (*CurveMapper) Kind() Kind { return KindCurveMapper }
func (*Offset) Kind() Kind { return KindOffset }
func (*Amplitude) Kind() Kind { return KindAmplitude }
func (*Mix) Kind() Kind { return KindMix }
func (*MultiMix) Kind() Kind { return KindMultiMix }
func (*Scale) Kind() Kind { return KindScale }
func (*Slider) Kind() Kind { return KindSlider }
func (*Rotator) Kind() Kind { return KindRotator }
func (*Anchor) Kind() Kind { return KindAnchor }
func (*XOverride) Kind() Kind { return KindXOverride }
func (*YOverride) Kind() Kind { return KindYOverride }
func (*ZOverride) Kind() Kind { return KindZOverride }
func (*GradientWarp) Kind() Kind { return KindGradientWarp }
func (*FastGradientWarp) Kind() Kind { return KindFastGradientWarp }
func (*VectorWarp) Kind() Kind { return KindVectorWarp }
func (*Distance) Kind() Kind { return KindDistance }
func (*Cube) Kind() Kind { return KindCube }
func (*Ellipsoid) Kind() Kind { return KindEllipsoid }
func (*Cuboid) Kind() Kind { return KindCuboid }
func (*Cylinder) Kind() Kind { return KindCylinder }
func (*Plane) Kind() Kind { return KindPlane }
func (*Axis) Kind() Kind { return KindAxis }
func (*Shell) Kind() Kind { return KindShell }
func (*Angle) Kind() Kind { return KindAngle }
func (*XValue) Kind() Kind { return KindXValue }
func (*YValue) Kind() Kind { return KindYValue }
func (*ZValue) Kind() Kind { return KindZValue }
func (*Terrain) Kind() Kind { return KindTerrain }
func (*BaseHeight) Kind() Kind { return KindBaseHeight }
func (*CellWallDistance) Kind() Kind { return KindCellWallDistance }
func (*DistanceToBiomeEdge) Kind() Kind { return KindDistanceToBiomeEdge }
func (*Gradient) Kind() Kind { return KindGradient }
func (*Cache) Kind() Kind { return KindCache }
func (*Cache2D) Kind() Kind { return KindCache2D }
func (*YSampled) Kind() Kind { return KindYSampled }
func (*Switch) Kind() Kind { return KindSwitch }
func (*SwitchState) Kind() Kind { return KindSwitchState }
func (*PositionsCellNoise) Kind() Kind { return KindPositionsCellNoise }
func (*Positions3D) Kind() Kind { return KindPositions3D }
func (*PositionsPinch) Kind() Kind { return KindPositionsPinch }
func (*PositionsTwist) Kind() Kind { return KindPositionsTwist }
func (*Exported) Kind() Kind { return KindExported }
func (*Imported) Kind() Kind { return KindImported }
func (*Pipeline) Kind() Kind { return KindPipeline }

func (*SimplexNoise2D) node() {}
func (*SimplexNoise3D) node() {}
func (*CellNoise2D) node() {}
func (*CellNoise3D) node() {}
func (*Constant) node() {}
func (*Sum) node() {}
func (*Multiplier) node() {}
func (*Abs) node() {}
func (*Inverter) node() {}
func (*Sqrt) node() {}
func (*Pow) node() {}
func (*OffsetConstant) node() {}
func (*AmplitudeConstant) node() {}
func (*Clamp) node() {}
func (*SmoothClamp) node() {}
func (*Floor) node() {}
func (*SmoothFloor) node() {}
func (*Ceiling) node() {}
func (*SmoothCeiling) node() {}
func (*Min) node() {}
func (*SmoothMin) node() {}
func (*Max) node() {}
func (*SmoothMax) node() {}
func (*Normalizer) node() {}
func (*CurveMapper) node() {}
func (*Offset) node() {}
func (*Amplitude) node() {}
func (*Mix) node() {}
func (*MultiMix) node() {}
func (*Scale) node() {}
func (*Slider) node() {}
func (*Rotator) node() {}
func (*Anchor) node() {}
func (*XOverride) node() {}
func (*YOverride) node() {}
func (*ZOverride) node() {}
func (*GradientWarp) node() {}
func (*FastGradientWarp) node() {}
func (*VectorWarp) node() {}
func (*Distance) node() {}
func (*Cube) node() {}
func (*Ellipsoid) node() {}
func (*Cuboid) node() {}
func (*Cylinder) node() {}
func (*Plane) node() {}
func (*Axis) node() {}
func (*Shell) node() {}
func (*Angle) node() {}
func (*XValue) node() {}
func (*YValue) node() {}
func (*ZValue) node() {}
func (*Terrain) node() {}
func (*BaseHeight) node() {}
func (*CellWallDistance) node() {}
func (*DistanceToBiomeEdge) node() {}
func (*Gradient) node() {}
func (*Cache) node() {}
func (*Cache2D) node() {}
func (*YSampled) node() {}
func (*Switch) node() {}
func (*SwitchState) node() {}
func (*PositionsCellNoise) node() {}
func (*Positions3D) node() {}
func (*PositionsPinch) node() {}
func (*PositionsTwist) node() {}
func (*Exported) node() {}
func (*Imported) node() {}
func (*Pipeline) node() {}

var catalog = []entry{
	{KindSimplexNoise2D, CategoryNoise, func() Node { return &SimplexNoise2D{} }},
	{KindSimplexNoise3D, CategoryNoise, func() Node { return &SimplexNoise3D{} }},
	{KindCellNoise2D, CategoryNoise, func() Node { return &CellNoise2D{} }},
	{KindCellNoise3D, CategoryNoise, func() Node { return &CellNoise3D{} }},
	{KindConstant, CategoryMath, func() Node { return &Constant{} }},
	{KindSum, CategoryMath, func() Node { return &Sum{} }},
	{KindMultiplier, CategoryMath, func() Node { return &Multiplier{} }},
	{KindAbs, CategoryMath, func() Node { return &Abs{} }},
	{KindInverter, CategoryMath, func() Node { return &Inverter{} }},
	{KindSqrt, CategoryMath, func() Node { return &Sqrt{} }},
	{KindPow, CategoryMath, func() Node { return &Pow{} }},
	{KindOffsetConstant, CategoryMath, func() Node { return &OffsetConstant{} }},
	{KindAmplitudeConstant, CategoryMath, func() Node { return &AmplitudeConstant{} }},
	{KindClamp, CategoryClamp, func() Node { return &Clamp{} }},
	{KindSmoothClamp, CategoryClamp, func() Node { return &SmoothClamp{} }},
	{KindFloor, CategoryClamp, func() Node { return &Floor{} }},
	{KindSmoothFloor, CategoryClamp, func() Node { return &SmoothFloor{} }},
	{KindCeiling, CategoryClamp, func() Node { return &Ceiling{} }},
	{KindSmoothCeiling, CategoryClamp, func() Node { return &SmoothCeiling{} }},
	{KindMin, CategoryMinMax, func() Node { return &Min{} }},
	{KindSmoothMin, CategoryMinMax, func() Node { return &SmoothMin{} }},
	{KindMax, CategoryMinMax, func() Node { return &Max{} }},
	{KindSmoothMax, CategoryMinMax, func() Node { return &SmoothMax{} }},
	{KindNormalizer, CategoryMapping, func() Node { return &Normalizer{} }},
	{KindCurveMapper, CategoryMapping, func() Node { return &CurveMapper{} }},
	{KindOffset, CategoryMapping, func() Node { return &Offset{} }},
	{KindAmplitude, CategoryMapping, func() Node { return &Amplitude{} }},
	{KindMix, CategoryMixing, func() Node { return &Mix{} }},
	{KindMultiMix, CategoryMixing, func() Node { return &MultiMix{} }},
	{KindScale, CategorySpatialTransform, func() Node { return &Scale{} }},
	{KindSlider, CategorySpatialTransform, func() Node { return &Slider{} }},
	{KindRotator, CategorySpatialTransform, func() Node { return &Rotator{} }},
	{KindAnchor, CategorySpatialTransform, func() Node { return &Anchor{} }},
	{KindXOverride, CategorySpatialTransform, func() Node { return &XOverride{} }},
	{KindYOverride, CategorySpatialTransform, func() Node { return &YOverride{} }},
	{KindZOverride, CategorySpatialTransform, func() Node { return &ZOverride{} }},
	{KindGradientWarp, CategoryWarp, func() Node { return &GradientWarp{} }},
	{KindFastGradientWarp, CategoryWarp, func() Node { return &FastGradientWarp{} }},
	{KindVectorWarp, CategoryWarp, func() Node { return &VectorWarp{} }},
	{KindDistance, CategoryShape, func() Node { return &Distance{} }},
	{KindCube, CategoryShape, func() Node { return &Cube{} }},
	{KindEllipsoid, CategoryShape, func() Node { return &Ellipsoid{} }},
	{KindCuboid, CategoryShape, func() Node { return &Cuboid{} }},
	{KindCylinder, CategoryShape, func() Node { return &Cylinder{} }},
	{KindPlane, CategoryShape, func() Node { return &Plane{} }},
	{KindAxis, CategoryShape, func() Node { return &Axis{} }},
	{KindShell, CategoryShape, func() Node { return &Shell{} }},
	{KindAngle, CategoryShape, func() Node { return &Angle{} }},
	{KindXValue, CategoryCoordinateAccessor, func() Node { return &XValue{} }},
	{KindYValue, CategoryCoordinateAccessor, func() Node { return &YValue{} }},
	{KindZValue, CategoryCoordinateAccessor, func() Node { return &ZValue{} }},
	{KindTerrain, CategoryWorldContext, func() Node { return &Terrain{} }},
	{KindBaseHeight, CategoryWorldContext, func() Node { return &BaseHeight{} }},
	{KindCellWallDistance, CategoryWorldContext, func() Node { return &CellWallDistance{} }},
	{KindDistanceToBiomeEdge, CategoryWorldContext, func() Node { return &DistanceToBiomeEdge{} }},
	{KindGradient, CategoryWorldContext, func() Node { return &Gradient{} }},
	{KindCache, CategoryCache, func() Node { return &Cache{} }},
	{KindCache2D, CategoryCache, func() Node { return &Cache2D{} }},
	{KindYSampled, CategoryCache, func() Node { return &YSampled{} }},
	{KindSwitch, CategorySwitch, func() Node { return &Switch{} }},
	{KindSwitchState, CategorySwitch, func() Node { return &SwitchState{} }},
	{KindPositionsCellNoise, CategoryPositionsBased, func() Node { return &PositionsCellNoise{} }},
	{KindPositions3D, CategoryPositionsBased, func() Node { return &Positions3D{} }},
	{KindPositionsPinch, CategoryPositionsBased, func() Node { return &PositionsPinch{} }},
	{KindPositionsTwist, CategoryPositionsBased, func() Node { return &PositionsTwist{} }},
	{KindExported, CategoryImportExport, func() Node { return &Exported{} }},
	{KindImported, CategoryImportExport, func() Node { return &Imported{} }},
	{KindPipeline, CategoryPipeline, func() Node { return &Pipeline{} }},
}
