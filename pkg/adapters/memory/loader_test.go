package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terranova/density/pkg/adapters/memory"
	"github.com/terranova/density/pkg/ast"
	"github.com/terranova/density/pkg/ports"
	contract "github.com/terranova/density/pkg/ports/tests"
)

func TestMemorySource_Contract(t *testing.T) {
	data := map[ports.AssetKind]map[string]string{
		ports.AssetDensity: {
			"WorldStructures/overworld": `{"Density":{"Type":"Constant","Value":1}}`,
			"Biomes/forest":             `{"Type":"Imported","Name":"hills"}`,
		},
		ports.AssetCurve: {
			"ramp": `[[0,0],[1,1]]`,
		},
	}

	// The contract compares raw bytes.
	bytesData := make(map[ports.AssetKind]map[string][]byte)
	for kind, assets := range data {
		bytesData[kind] = make(map[string][]byte)
		for k, v := range assets {
			bytesData[kind][k] = []byte(v)
		}
	}

	source := memory.NewSource(data)

	contract.AssetSourceContractTest(t, source, bytesData)
}

func TestMemorySource_FromNodes(t *testing.T) {
	source, err := memory.NewFromNodes(map[string]ast.Node{
		"base": &ast.Constant{Value: ast.Float(2)},
	})
	require.NoError(t, err)

	data, err := source.Load(context.Background(), ports.AssetDensity, "base")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Type":"Constant","Value":2}`, string(data))

	_, err = memory.NewFromNodes(map[string]ast.Node{"": &ast.XValue{}})
	assert.Error(t, err)
}
