package batch

import (
	"context"
	"fmt"
	"testing"

	"github.com/ecadlabs/jtree/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	var c jtree.Counter
	dec, err := New(4, jtree.OpAllocator(&c))
	require.NoError(t, err)
	defer dec.Close()

	docs := make([][]byte, 100)
	for i := range docs {
		if i%10 == 9 {
			docs[i] = []byte(`[1,`)
		} else {
			docs[i] = []byte(fmt.Sprintf(`{"n":%d}`, i))
		}
	}
	res := dec.Decode(context.Background(), docs)
	require.Len(t, res, len(docs))
	for i, r := range res {
		if i%10 == 9 {
			assert.ErrorIs(t, r.Err, jtree.ErrUnclosedArray)
			assert.Nil(t, r.Value)
			continue
		}
		require.NoError(t, r.Err)
		obj, ok := r.Value.AsObject()
		require.True(t, ok)
		v, ok := obj.Get("n")
		require.True(t, ok)
		n, _ := v.AsNumber()
		assert.Equal(t, float64(i), n)
		r.Value.Destroy()
	}
	assert.Equal(t, int64(0), c.Live())
}

func TestDecodeCancelled(t *testing.T) {
	dec, err := New(2)
	require.NoError(t, err)
	defer dec.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := dec.Decode(ctx, [][]byte{[]byte(`[]`), []byte(`{}`)})
	for _, r := range res {
		assert.ErrorIs(t, r.Err, context.Canceled)
		assert.Nil(t, r.Value)
	}
}

func TestDecodeClosed(t *testing.T) {
	dec, err := New(1)
	require.NoError(t, err)
	dec.Close()
	res := dec.Decode(context.Background(), [][]byte{[]byte(`[]`)})
	assert.Error(t, res[0].Err)
}
