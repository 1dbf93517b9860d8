package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingWarmer struct {
	calls int
	err   error
}

func (w *countingWarmer) Warm(ctx context.Context) (int, error) {
	w.calls++
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("expected a deadline")
	}
	return 4, w.err
}

type countingPurger struct{ calls int }

func (p *countingPurger) PurgeExpired(context.Context) (int64, error) {
	p.calls++
	return 2, nil
}

func TestRunOnceCallsBoth(t *testing.T) {
	w := &countingWarmer{}
	p := &countingPurger{}
	m := &Maintenance{Catalog: w, Sessions: p}

	m.RunOnce(context.Background())
	assert.Equal(t, 1, w.calls)
	assert.Equal(t, 1, p.calls)
}

func TestRunOnceContinuesAfterWarmFailure(t *testing.T) {
	w := &countingWarmer{err: errors.New("backend down")}
	p := &countingPurger{}
	m := &Maintenance{Catalog: w, Sessions: p, Timeout: time.Second}

	m.RunOnce(context.Background())
	assert.Equal(t, 1, p.calls)
}

func TestRunOnceNilDependencies(t *testing.T) {
	m := &Maintenance{}
	m.RunOnce(context.Background())
}

func TestStartRejectsBadSpec(t *testing.T) {
	m := &Maintenance{}
	require.Error(t, m.Start("not a cron spec"))
	m.Stop(context.Background())
}

func TestStartAndStop(t *testing.T) {
	m := &Maintenance{Catalog: &countingWarmer{}}
	require.NoError(t, m.Start("*/5 * * * *"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	m.Stop(ctx)
}
