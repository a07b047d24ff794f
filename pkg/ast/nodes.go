package ast

// SimplexNoise2D is fractal simplex noise over the x/z plane, in [-1, 1].
type SimplexNoise2D struct {
	Lacunarity  *float64 `json:"Lacunarity,omitempty"`
	Persistence *float64 `json:"Persistence,omitempty"`
	Scale       *float64 `json:"Scale,omitempty"`
	Octaves     *int     `json:"Octaves,omitempty"`
	Seed        *string  `json:"Seed,omitempty"`
}

// SimplexNoise3D is fractal simplex noise with separate horizontal and vertical scale.
type SimplexNoise3D struct {
	Lacunarity  *float64 `json:"Lacunarity,omitempty"`
	Persistence *float64 `json:"Persistence,omitempty"`
	ScaleXZ     *float64 `json:"ScaleXZ,omitempty"`
	ScaleY      *float64 `json:"ScaleY,omitempty"`
	Octaves     *int     `json:"Octaves,omitempty"`
	Seed        *string  `json:"Seed,omitempty"`
}

// CellNoise2D is Worley noise over the x/z plane.
type CellNoise2D struct {
	Scale            *float64 `json:"Scale,omitempty"`
	Seed             *string  `json:"Seed,omitempty"`
	ReturnType       *string  `json:"ReturnType,omitempty"`
	DistanceFunction *string  `json:"DistanceFunction,omitempty"`
}

type CellNoise3D struct {
	Scale            *float64 `json:"Scale,omitempty"`
	Seed             *string  `json:"Seed,omitempty"`
	ReturnType       *string  `json:"ReturnType,omitempty"`
	DistanceFunction *string  `json:"DistanceFunction,omitempty"`
}

type Constant struct {
	Value *float64 `json:"Value,omitempty"`
}

// Sum adds its inputs left to right.
type Sum struct {
	Inputs []Input `json:"Inputs,omitempty"`
}

// Multiplier multiplies its inputs and stops at the first exact zero.
type Multiplier struct {
	Inputs []Input `json:"Inputs,omitempty"`
}

type Abs struct {
	Input Input `json:"Input,omitzero"`
}

// Inverter negates its input.
type Inverter struct {
	Input Input `json:"Input,omitzero"`
}

// Sqrt is the square root, mirrored for negative inputs.
type Sqrt struct {
	Input Input `json:"Input,omitzero"`
}

// Pow raises its input to Exponent, odd-symmetric for negative bases.
type Pow struct {
	Exponent *float64 `json:"Exponent,omitempty"`
	Input    Input    `json:"Input,omitzero"`
}

type OffsetConstant struct {
	Offset *float64 `json:"Offset,omitempty"`
	Input  Input    `json:"Input,omitzero"`
}

type AmplitudeConstant struct {
	Amplitude *float64 `json:"Amplitude,omitempty"`
	Input     Input    `json:"Input,omitzero"`
}

type Clamp struct {
	WallA *float64 `json:"WallA,omitempty"`
	WallB *float64 `json:"WallB,omitempty"`
	Input Input    `json:"Input,omitzero"`
}

// SmoothClamp clamps with a C1 blend of width Range at each wall.
type SmoothClamp struct {
	WallA *float64 `json:"WallA,omitempty"`
	WallB *float64 `json:"WallB,omitempty"`
	Range *float64 `json:"Range,omitempty"`
	Input Input    `json:"Input,omitzero"`
}

type Floor struct {
	Floor *float64 `json:"Floor,omitempty"`
	Input Input    `json:"Input,omitzero"`
}

type SmoothFloor struct {
	Floor *float64 `json:"Floor,omitempty"`
	Range *float64 `json:"Range,omitempty"`
	Input Input    `json:"Input,omitzero"`
}

type Ceiling struct {
	Ceiling *float64 `json:"Ceiling,omitempty"`
	Input   Input    `json:"Input,omitzero"`
}

type SmoothCeiling struct {
	Ceiling *float64 `json:"Ceiling,omitempty"`
	Range   *float64 `json:"Range,omitempty"`
	Input   Input    `json:"Input,omitzero"`
}

type Min struct {
	Inputs []Input `json:"Inputs,omitempty"`
}

type SmoothMin struct {
	Range  *float64 `json:"Range,omitempty"`
	Inputs []Input  `json:"Inputs,omitempty"`
}

type Max struct {
	Inputs []Input `json:"Inputs,omitempty"`
}

type SmoothMax struct {
	Range  *float64 `json:"Range,omitempty"`
	Inputs []Input  `json:"Inputs,omitempty"`
}

// Normalizer maps [FromMin, FromMax] onto [ToMin, ToMax] affinely. Values outside are extrapolated.
type Normalizer struct {
	FromMin *float64 `json:"FromMin,omitempty"`
	FromMax *float64 `json:"FromMax,omitempty"`
	ToMin   *float64 `json:"ToMin,omitempty"`
	ToMax   *float64 `json:"ToMax,omitempty"`
	Input   Input    `json:"Input,omitzero"`
}

type CurveMapper struct {
	Curve *Curve `json:"Curve,omitempty"`
	Input Input  `json:"Input,omitzero"`
}

// Offset adds a density-driven offset to its input.
type Offset struct {
	Offset Input `json:"Offset,omitzero"`
	Input  Input `json:"Input,omitzero"`
}

// Amplitude multiplies its input by a density-driven amplitude.
type Amplitude struct {
	Amplitude Input `json:"Amplitude,omitzero"`
	Input     Input `json:"Input,omitzero"`
}

// Mix blends by a gauge. Inputs are [A, B, Gauge] or [Value, Gauge].
type Mix struct {
	Inputs []Input `json:"Inputs,omitempty"`
}

// MultiMix interpolates between len(Keys) values; the last input is the gauge.
type MultiMix struct {
	Keys   []float64 `json:"Keys,omitempty"`
	Inputs []Input   `json:"Inputs,omitempty"`
}

// Scale evaluates Input at the coordinate divided per axis.
type Scale struct {
	X     *float64 `json:"X,omitempty"`
	Y     *float64 `json:"Y,omitempty"`
	Z     *float64 `json:"Z,omitempty"`
	Input Input    `json:"Input,omitzero"`
}

type Slider struct {
	SlideX *float64 `json:"SlideX,omitempty"`
	SlideY *float64 `json:"SlideY,omitempty"`
	SlideZ *float64 `json:"SlideZ,omitempty"`
	Input  Input    `json:"Input,omitzero"`
}

type Rotator struct {
	NewYAxis  *Vector  `json:"NewYAxis,omitempty"`
	X         *float64 `json:"X,omitempty"`
	Y         *float64 `json:"Y,omitempty"`
	Z         *float64 `json:"Z,omitempty"`
	SpinAngle *float64 `json:"SpinAngle,omitempty"`
	Input     Input    `json:"Input,omitzero"`
}

// Anchor sets (or with Reverse, clears) the local origin for shapes below it.
type Anchor struct {
	Reverse bool  `json:"Reverse,omitempty"`
	Input   Input `json:"Input,omitzero"`
}

// XOverride replaces the x coordinate seen by Input with the value of Override.
type XOverride struct {
	Input    Input `json:"Input,omitzero"`
	Override Input `json:"Override,omitzero"`
}

type YOverride struct {
	Input    Input `json:"Input,omitzero"`
	Override Input `json:"Override,omitzero"`
}

type ZOverride struct {
	Input    Input `json:"Input,omitzero"`
	Override Input `json:"Override,omitzero"`
}

// GradientWarp displaces the coordinate of Inputs[0] along the gradient of Inputs[1].
type GradientWarp struct {
	SampleRange *float64 `json:"SampleRange,omitempty"`
	WarpFactor  *float64 `json:"WarpFactor,omitempty"`
	Is2D        bool     `json:"2D,omitempty"`
	YFor2D      *float64 `json:"YFor2D,omitempty"`
	Inputs      []Input  `json:"Inputs,omitempty"`
}

type FastGradientWarp struct {
	WarpScale       *float64 `json:"WarpScale,omitempty"`
	WarpLacunarity  *float64 `json:"WarpLacunarity,omitempty"`
	WarpPersistence *float64 `json:"WarpPersistence,omitempty"`
	WarpOctaves     *int     `json:"WarpOctaves,omitempty"`
	WarpFactor      *float64 `json:"WarpFactor,omitempty"`
	Seed            *string  `json:"Seed,omitempty"`
	Is2D            bool     `json:"2D,omitempty"`
	Input           Input    `json:"Input,omitzero"`
}

// VectorWarp displaces the coordinate of Inputs[0] along a vector scaled by Inputs[1].
type VectorWarp struct {
	WarpFactor *float64 `json:"WarpFactor,omitempty"`
	WarpVector *Vector  `json:"WarpVector,omitempty"`
	X          *float64 `json:"X,omitempty"`
	Y          *float64 `json:"Y,omitempty"`
	Z          *float64 `json:"Z,omitempty"`
	Inputs     []Input  `json:"Inputs,omitempty"`
}

type Distance struct {
	Curve *Curve `json:"Curve,omitempty"`
}

type Cube struct {
	Curve *Curve `json:"Curve,omitempty"`
}

type Ellipsoid struct {
	Curve *Curve   `json:"Curve,omitempty"`
	Scale *Vector  `json:"Scale,omitempty"`
	X     *float64 `json:"X,omitempty"`
	Y     *float64 `json:"Y,omitempty"`
	Z     *float64 `json:"Z,omitempty"`
	Spin  *float64 `json:"Spin,omitempty"`
}

type Cuboid struct {
	Curve    *Curve   `json:"Curve,omitempty"`
	Scale    *Vector  `json:"Scale,omitempty"`
	X        *float64 `json:"X,omitempty"`
	Y        *float64 `json:"Y,omitempty"`
	Z        *float64 `json:"Z,omitempty"`
	Spin     *float64 `json:"Spin,omitempty"`
	NewYAxis *Vector  `json:"NewYAxis,omitempty"`
}

type Cylinder struct {
	AxialCurve  *Curve   `json:"AxialCurve,omitempty"`
	RadialCurve *Curve   `json:"RadialCurve,omitempty"`
	Spin        *float64 `json:"Spin,omitempty"`
	NewYAxis    *Vector  `json:"NewYAxis,omitempty"`
}

type Plane struct {
	PlaneNormal *Vector  `json:"PlaneNormal,omitempty"`
	X           *float64 `json:"X,omitempty"`
	Y           *float64 `json:"Y,omitempty"`
	Z           *float64 `json:"Z,omitempty"`
	Curve       *Curve   `json:"Curve,omitempty"`
}

// Axis maps the distance to a line through the origin.
type Axis struct {
	Axis       *Vector  `json:"Axis,omitempty"`
	X          *float64 `json:"X,omitempty"`
	Y          *float64 `json:"Y,omitempty"`
	Z          *float64 `json:"Z,omitempty"`
	Curve      *Curve   `json:"Curve,omitempty"`
	IsAnchored bool     `json:"IsAnchored,omitempty"`
}

type Shell struct {
	Axis          *Vector  `json:"Axis,omitempty"`
	X             *float64 `json:"X,omitempty"`
	Y             *float64 `json:"Y,omitempty"`
	Z             *float64 `json:"Z,omitempty"`
	Mirror        bool     `json:"Mirror,omitempty"`
	AngleCurve    *Curve   `json:"AngleCurve,omitempty"`
	DistanceCurve *Curve   `json:"DistanceCurve,omitempty"`
}

// Angle is the angle in degrees between Vector and the vector of VectorProvider.
type Angle struct {
	Vector         *Vector `json:"Vector,omitempty"`
	VectorProvider *Vector `json:"VectorProvider,omitempty"`
}

type XValue struct{}

type YValue struct{}

type ZValue struct{}

// Terrain is the host-supplied interpolated terrain density.
type Terrain struct{}

type BaseHeight struct {
	BaseHeightName *string `json:"BaseHeightName,omitempty"`
	Distance       bool    `json:"Distance,omitempty"`
}

type CellWallDistance struct {
	Positions   *Positions `json:"Positions,omitempty"`
	MaxDistance *float64   `json:"MaxDistance,omitempty"`
}

type DistanceToBiomeEdge struct{}

// Gradient is a vertical ramp from (FromY, From) to (ToY, To).
type Gradient struct {
	From  *float64 `json:"From,omitempty"`
	To    *float64 `json:"To,omitempty"`
	FromY *float64 `json:"FromY,omitempty"`
	ToY   *float64 `json:"ToY,omitempty"`
}

// Cache memoizes Input per 3D coordinate for the session.
type Cache struct {
	Capacity *int  `json:"Capacity,omitempty"`
	Input    Input `json:"Input,omitzero"`
}

// Cache2D memoizes Input per x/z column for the session.
type Cache2D struct {
	Input Input `json:"Input,omitzero"`
}

// YSampled samples Input at a fixed height, memoized per x/z column.
type YSampled struct {
	Y     *float64 `json:"Y,omitempty"`
	Input Input    `json:"Input,omitzero"`
}

// Switch evaluates the case matching the state of channel Name, else Input.
type Switch struct {
	Name        *string      `json:"Name,omitempty"`
	SwitchCases []SwitchCase `json:"SwitchCases,omitempty"`
	Input       Input        `json:"Input,omitzero"`
}

// SwitchState sets channel Name to SwitchState while Input is evaluated.
type SwitchState struct {
	Name        *string `json:"Name,omitempty"`
	SwitchState *string `json:"SwitchState,omitempty"`
	Input       Input   `json:"Input,omitzero"`
}

type PositionsCellNoise struct {
	Positions        *Positions `json:"Positions,omitempty"`
	ReturnType       *string    `json:"ReturnType,omitempty"`
	DistanceFunction *string    `json:"DistanceFunction,omitempty"`
	MaxDistance      *float64   `json:"MaxDistance,omitempty"`
}

type Positions3D struct {
	Positions   *Positions `json:"Positions,omitempty"`
	Density     Input      `json:"Density,omitzero"`
	MaxDistance *float64   `json:"MaxDistance,omitempty"`
}

type PositionsPinch struct {
	Positions         *Positions `json:"Positions,omitempty"`
	PinchCurve        *Curve     `json:"PinchCurve,omitempty"`
	MaxDistance       *float64   `json:"MaxDistance,omitempty"`
	NormalizeDistance bool       `json:"NormalizeDistance,omitempty"`
	HorizontalPinch   bool       `json:"HorizontalPinch,omitempty"`
	PositionsMaxY     *float64   `json:"PositionsMaxY,omitempty"`
	PositionsMinY     *float64   `json:"PositionsMinY,omitempty"`
	Input             Input      `json:"Input,omitzero"`
}

type PositionsTwist struct {
	Positions         *Positions `json:"Positions,omitempty"`
	TwistCurve        *Curve     `json:"TwistCurve,omitempty"`
	TwistAxis         *Vector    `json:"TwistAxis,omitempty"`
	X                 *float64   `json:"X,omitempty"`
	Y                 *float64   `json:"Y,omitempty"`
	Z                 *float64   `json:"Z,omitempty"`
	MaxDistance       *float64   `json:"MaxDistance,omitempty"`
	NormalizeDistance bool       `json:"NormalizeDistance,omitempty"`
	Input             Input      `json:"Input,omitzero"`
}

// Exported names a sub-tree for reuse. Density takes precedence over Input.
type Exported struct {
	Name           *string `json:"Name,omitempty"`
	SingleInstance bool    `json:"SingleInstance,omitempty"`
	Density        Input   `json:"Density,omitzero"`
	Input          Input   `json:"Input,omitzero"`
}

type Imported struct {
	Name *string `json:"Name,omitempty"`
}

// Pipeline threads Input through Steps in order.
type Pipeline struct {
	Steps []Input `json:"Steps,omitempty"`
	Input Input   `json:"Input,omitzero"`
}

// KindCarried is not a document kind: New does not know it and it is absent
// from Kinds.
const KindCarried Kind = "Carried"

// Carried stands for the running value of a pipeline inside its step Step.
// The resolver places it in the slot a step reads its input from.
type Carried struct {
	Step int `json:"Step"`
}

func (*Carried) Kind() Kind { return KindCarried }
func (*Carried) node() {}
