package file_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terranova/density/internal/testutils"
	"github.com/terranova/density/pkg/adapters/file"
	"github.com/terranova/density/pkg/domain"
	"github.com/terranova/density/pkg/ports"
	contract "github.com/terranova/density/pkg/ports/tests"
)

func TestFileSource_Contract(t *testing.T) {
	dir := testutils.SetupPack(t, map[string]string{
		"Biomes/forest.json":             `{"Type":"Imported","Name":"hills"}`,
		"WorldStructures/overworld.json": `{"Density":{"Type":"Constant","Value":1}}`,
		"Curves/ramp.json":               `[[0,0],[1,1]]`,
		"Positions/villages.json":        `[{"X":1,"Y":2,"Z":3}]`,
		"README.md":                      "not an asset",
		".git/config.json":               `{}`,
	})

	source, err := file.New(dir)
	require.NoError(t, err)

	contract.AssetSourceContractTest(t, source, map[ports.AssetKind]map[string][]byte{
		ports.AssetDensity: {
			"Biomes/forest":             []byte(`{"Type":"Imported","Name":"hills"}`),
			"WorldStructures/overworld": []byte(`{"Density":{"Type":"Constant","Value":1}}`),
		},
		ports.AssetCurve: {
			"Curves/ramp": []byte(`[[0,0],[1,1]]`),
		},
		ports.AssetPositions: {
			"Positions/villages": []byte(`[{"X":1,"Y":2,"Z":3}]`),
		},
	})
}

func TestFileSource_YAML(t *testing.T) {
	dir := testutils.SetupPack(t, map[string]string{
		"Settings/base.yaml": "Type: Sum\nInputs:\n  - 1\n  - Type: YValue\n",
		"Curves/soft.yml":    "Type: Smooth\nPoints: [[0, 0], [1, 1]]\n",
		"Curves/broken.yaml": "Type: [unclosed\n",
	})
	source, err := file.New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	data, err := source.Load(ctx, ports.AssetDensity, "Settings/base")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Type":"Sum","Inputs":[1,{"Type":"YValue"}]}`, string(data))

	data, err = source.Load(ctx, ports.AssetCurve, "Curves/soft")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Type":"Smooth","Points":[[0,0],[1,1]]}`, string(data))

	_, err = source.Load(ctx, ports.AssetCurve, "Curves/broken")
	assert.ErrorIs(t, err, domain.ErrSyntax)
}

func TestFileSource_KindMismatchAndEscape(t *testing.T) {
	dir := testutils.SetupPack(t, map[string]string{"Curves/ramp.json": `[]`})
	source, err := file.New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = source.Load(ctx, ports.AssetDensity, "Curves/ramp")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = source.Load(ctx, ports.AssetDensity, "../outside")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFileSource_Ignore(t *testing.T) {
	dir := testutils.SetupPack(t, map[string]string{
		"density.yaml":    "pack: .\n",
		"Biomes/a.json":   `{"Type":"Constant","Value":1}`,
		"Biomes/sub.yaml": "Type: XValue\n",
	})
	source, err := file.New(dir, file.WithIgnore("density.yaml"))
	require.NoError(t, err)

	ids, err := source.List(context.Background(), ports.AssetDensity)
	require.NoError(t, err)
	assert.Equal(t, []string{"Biomes/a", "Biomes/sub"}, ids)
}

func TestFileSource_Collision(t *testing.T) {
	dir := testutils.SetupPack(t, map[string]string{
		"Biomes/forest.json": `{"Type":"XValue"}`,
		"Biomes/forest.yaml": "Type: XValue\n",
	})
	source, err := file.New(dir)
	require.NoError(t, err)

	_, err = source.List(context.Background(), ports.AssetDensity)
	assert.ErrorContains(t, err, "collision detected")
}

func TestFileSource_NotADirectory(t *testing.T) {
	dir := testutils.SetupPack(t, map[string]string{"pack.json": `{}`})

	_, err := file.New(filepath.Join(dir, "pack.json"))
	assert.Error(t, err)
	_, err = file.New(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestFileSource_Watch(t *testing.T) {
	dir := testutils.SetupPack(t, map[string]string{"Biomes/forest.json": `{"Type":"XValue"}`})
	source, err := file.New(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, err := source.Watch(ctx)
	require.NoError(t, err)

	testutils.WriteFiles(t, dir, map[string]string{"Biomes/forest.json": `{"Type":"YValue"}`})

	select {
	case id := <-events:
		assert.Equal(t, "Biomes/forest", id)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change event")
	}

	cancel()
	// The channel closes once the watcher stops.
	for range events {
	}
}
