package whisper

import (
	"context"

	"scribe/internal/modelstore"
)

type fakeModel struct {
	name         string
	multilingual bool
	vocab        int
	result       Result
	err          error
	gotOpts      Options
	gotPath      string
}

func newFakeModel(multilingual bool) *fakeModel {
	vocab := 51864
	if multilingual {
		vocab = 51865
	}
	return &fakeModel{name: "fake", multilingual: multilingual, vocab: vocab}
}

func (f *fakeModel) Name() string         { return f.name }
func (f *fakeModel) IsMultilingual() bool { return f.multilingual }
func (f *fakeModel) Dims() modelstore.Dims {
	return modelstore.Dims{NVocab: f.vocab}
}

func (f *fakeModel) Transcribe(_ context.Context, path string, opts Options) (Result, error) {
	f.gotPath = path
	f.gotOpts = opts
	return f.result, f.err
}
