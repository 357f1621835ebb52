package actuator_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmdflow/cmdflow/pkg/actuator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSleep_Completes(t *testing.T) {
	start := time.Now()
	require.NoError(t, actuator.Sleep(context.Background(), 20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := actuator.Sleep(ctx, 5*time.Second)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSleep_ZeroHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, actuator.Sleep(ctx, 0), context.Canceled)
	assert.NoError(t, actuator.Sleep(context.Background(), 0))
}

func TestParseButton(t *testing.T) {
	b, err := actuator.ParseButton("")
	require.NoError(t, err)
	assert.Equal(t, actuator.ButtonLeft, b)

	b, err = actuator.ParseButton(" Right ")
	require.NoError(t, err)
	assert.Equal(t, actuator.ButtonRight, b)

	_, err = actuator.ParseButton("thumb")
	assert.Error(t, err)
}

func TestParseKey(t *testing.T) {
	k, err := actuator.ParseKey("Enter")
	require.NoError(t, err)
	code, ok := k.Code()
	require.True(t, ok)
	assert.Equal(t, byte(0x0D), code)

	k, err = actuator.ParseKey("v")
	require.NoError(t, err)
	code, _ = k.Code()
	assert.Equal(t, byte('V'), code)

	_, err = actuator.ParseKey("hyper")
	assert.Error(t, err)
}

func TestRecorder(t *testing.T) {
	r := actuator.NewRecorder(actuator.Point{X: 1, Y: 2})
	p, err := r.Position()
	require.NoError(t, err)
	assert.Equal(t, actuator.Point{X: 1, Y: 2}, p)

	require.NoError(t, r.MoveTo(10, 20))
	require.NoError(t, r.Click(actuator.ButtonLeft))
	require.NoError(t, r.TypeRune('a'))
	require.NoError(t, r.Press(actuator.KeyControl))
	require.NoError(t, r.Release(actuator.KeyControl))

	assert.Equal(t, []string{
		"move(10,20)", "click(left)", "type('a')", "press(ctrl)", "release(ctrl)",
	}, r.Ops())
	assert.Equal(t, 10, r.Calls()[1].X)

	r.Reset()
	assert.Empty(t, r.Calls())
}
