package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nifty-data/internal/fetch"
	"nifty-data/internal/load"
	"nifty-data/internal/symbols"
)

type fakeFetchStage struct {
	err    error
	called bool
}

func (f *fakeFetchStage) Run(context.Context, []symbols.Symbol, time.Time) ([]fetch.Result, error) {
	f.called = true
	return nil, f.err
}

type fakeLoadStage struct {
	err    error
	called bool
}

func (l *fakeLoadStage) Run(context.Context) (load.Summary, error) {
	l.called = true
	return load.Summary{}, l.err
}

func TestRunPipelineSequencesStages(t *testing.T) {
	fetcher := &fakeFetchStage{}
	loader := &fakeLoadStage{}

	err := RunPipeline(context.Background(), fetcher, loader, nil)

	assert.NoError(t, err)
	assert.True(t, fetcher.called)
	assert.True(t, loader.called)
}

func TestRunPipelineFetchFailureSkipsLoad(t *testing.T) {
	fetcher := &fakeFetchStage{err: errors.New("provider down")}
	loader := &fakeLoadStage{}

	err := RunPipeline(context.Background(), fetcher, loader, nil)

	assert.ErrorContains(t, err, "fetch stage")
	assert.False(t, loader.called, "load stage must not run after a failed fetch stage")
}

func TestRunPipelineLoadFailureReported(t *testing.T) {
	fetcher := &fakeFetchStage{}
	loader := &fakeLoadStage{err: errors.New("db down")}

	err := RunPipeline(context.Background(), fetcher, loader, nil)

	assert.ErrorContains(t, err, "load stage")
}
