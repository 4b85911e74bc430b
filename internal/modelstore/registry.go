package modelstore

import (
	"fmt"
	"strings"
)

// Dims mirrors the published model dimensions.
type Dims struct {
	NMels       int
	NAudioCtx   int
	NAudioState int
	NAudioHead  int
	NAudioLayer int
	NVocab      int
	NTextCtx    int
	NTextState  int
	NTextHead   int
	NTextLayer  int
}

func (d Dims) String() string {
	return fmt.Sprintf(
		"ModelDimensions(n_mels=%d, n_audio_ctx=%d, n_audio_state=%d, n_audio_head=%d, n_audio_layer=%d, n_vocab=%d, n_text_ctx=%d, n_text_state=%d, n_text_head=%d, n_text_layer=%d)",
		d.NMels, d.NAudioCtx, d.NAudioState, d.NAudioHead, d.NAudioLayer,
		d.NVocab, d.NTextCtx, d.NTextState, d.NTextHead, d.NTextLayer,
	)
}

// Spec describes one downloadable model.
type Spec struct {
	Name   string
	SHA256 string
	Dims   Dims
}

// Multilingual reports whether the model was trained on more than English.
func (s Spec) Multilingual() bool {
	return s.Dims.NVocab >= 51865
}

// FileName is the on-disk weights file name.
func (s Spec) FileName() string {
	return s.Name + ".pt"
}

// URL returns the download location beneath baseURL. The path embeds the
// digest, so a URL always identifies exactly one file.
func (s Spec) URL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/" + s.SHA256 + "/" + s.FileName()
}

const (
	vocabEnglish      = 51864
	vocabMultilingual = 51865
	vocabV3           = 51866
)

func dims(mels, state, heads, layers, textLayers, vocab int) Dims {
	return Dims{
		NMels:       mels,
		NAudioCtx:   1500,
		NAudioState: state,
		NAudioHead:  heads,
		NAudioLayer: layers,
		NVocab:      vocab,
		NTextCtx:    448,
		NTextState:  state,
		NTextHead:   heads,
		NTextLayer:  textLayers,
	}
}

var registry = []Spec{
	{"tiny.en", "d3dd57d32accea0b295c96e26691aa14d8822fac7d9d27d5dc00b4ca2826dd03", dims(80, 384, 6, 4, 4, vocabEnglish)},
	{"tiny", "65147644a518d12f04e32d6f3b26facc3f8dd46e5390956a9424a650c0ce22b9", dims(80, 384, 6, 4, 4, vocabMultilingual)},
	{"base.en", "25a8566e1d0c1e2231d1c762132cd20e0f96a85d16145c3a00adf5d1ac670ead", dims(80, 512, 8, 6, 6, vocabEnglish)},
	{"base", "ed3a0b6b1c0edf879ad9b11b1af5a0e6ab5db9205f891f668f8b0e6c6326e34e", dims(80, 512, 8, 6, 6, vocabMultilingual)},
	{"small.en", "f953ad0fd29cacd07d5a9eda5624af0f6bcf2258be67c92b79389873d91e0872", dims(80, 768, 12, 12, 12, vocabEnglish)},
	{"small", "9ecf779972d90ba49c06d968637d720dd632c55bbf19d441fb42bf17a411e794", dims(80, 768, 12, 12, 12, vocabMultilingual)},
	{"medium.en", "d7440d1dc186f76616474e0ff0b3b6b879abc9d1a4926b7adfa41db2d497ab4f", dims(80, 1024, 16, 24, 24, vocabEnglish)},
	{"medium", "345ae4da62f9b3d59415adc60127b97c714f32e89e936602e85993674d08dcb1", dims(80, 1024, 16, 24, 24, vocabMultilingual)},
	{"large-v1", "e4b87e7e0bf463eb8e6956e646f1e277e901512310def2c24bf0e11bd3c28e9a", dims(80, 1280, 20, 32, 32, vocabMultilingual)},
	{"large-v2", "81f7c96c852ee8fc832187b0132e569d6c3065a3252ed18e56effd0b6a73e524", dims(80, 1280, 20, 32, 32, vocabMultilingual)},
	{"large-v3", "e5b1a55b89c1367dacf97e3e19bfd829a01529dbfdeefa8caeb59b3f1b81dadb", dims(128, 1280, 20, 32, 32, vocabV3)},
	{"large-v3-turbo", "aff26ae408abcba5fbf8813c21e62b0941638c5f6eebfb145be0c9839262a19a", dims(128, 1280, 20, 32, 4, vocabV3)},
}

var aliases = map[string]string{
	"large": "large-v3",
	"turbo": "large-v3-turbo",
}

// Lookup resolves a model name or alias to its registry entry.
func Lookup(name string) (Spec, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	for _, spec := range registry {
		if spec.Name == key {
			return spec, true
		}
	}
	return Spec{}, false
}

// Specs returns every registry entry in publication order.
func Specs() []Spec {
	out := make([]Spec, len(registry))
	copy(out, registry)
	return out
}

// Names returns the canonical model names followed by the aliases.
func Names() []string {
	names := make([]string, 0, len(registry)+len(aliases))
	for _, spec := range registry {
		names = append(names, spec.Name)
	}
	names = append(names, "large", "turbo")
	return names
}
