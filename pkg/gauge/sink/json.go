package sink

import (
	"encoding/json"

	"github.com/matzehuels/ringgauge/pkg/gauge"
	"github.com/matzehuels/ringgauge/pkg/settings"
)

type jsonOutput struct {
	ViewModel *settings.ViewModel `json:"viewModel,omitempty"`
	Scene     gauge.Scene         `json:"scene"`
}

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonOutput)

// WithViewModel includes the view-model the scene was built from.
func WithViewModel(vm settings.ViewModel) JSONOption {
	return func(o *jsonOutput) { o.ViewModel = &vm }
}

// RenderJSON exports the scene as a pretty-printed JSON document.
func RenderJSON(s gauge.Scene, opts ...JSONOption) ([]byte, error) {
	out := jsonOutput{Scene: s}
	for _, opt := range opts {
		opt(&out)
	}
	return json.MarshalIndent(out, "", "  ")
}
