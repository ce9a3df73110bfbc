package visual

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/ringgauge/pkg/dataview"
	"github.com/matzehuels/ringgauge/pkg/gauge"
	"github.com/matzehuels/ringgauge/pkg/settings"
)

type recordingSurface struct {
	clears int
	scenes []gauge.Scene
	err    error
}

func (r *recordingSurface) Clear() { r.clears++ }

func (r *recordingSurface) Draw(s gauge.Scene) error {
	if r.err != nil {
		return r.err
	}
	r.scenes = append(r.scenes, s)
	return nil
}

func update(w, h float64, dvs ...dataview.DataView) *dataview.UpdateOptions {
	return &dataview.UpdateOptions{
		Viewport:  &dataview.Viewport{Width: w, Height: h},
		DataViews: dvs,
	}
}

func TestNewClearsSurface(t *testing.T) {
	s := &recordingSurface{}
	New(s)
	if s.clears != 1 {
		t.Errorf("New should clear the surface once, got %d", s.clears)
	}
}

func TestUpdateDrawsDefaults(t *testing.T) {
	s := &recordingSurface{}
	v := New(s)

	if err := v.Update(context.Background(), update(100, 50)); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if len(s.scenes) != 1 {
		t.Fatalf("expected one draw, got %d", len(s.scenes))
	}
	scene := s.scenes[0]
	if scene.Circle.StrokeHex != settings.DefaultMidColor {
		t.Errorf("stroke = %s, want %s", scene.Circle.StrokeHex, settings.DefaultMidColor)
	}

	vm, ok := v.ViewModel()
	if !ok {
		t.Fatal("ViewModel() should be available after Update")
	}
	if vm != settings.Builtin().ViewModel() {
		t.Errorf("ViewModel() = %+v, want defaults", vm)
	}
	if got, ok := v.Scene(); !ok || got != scene {
		t.Error("Scene() should return the drawn scene")
	}
}

func TestUpdateWithoutViewportIsNoop(t *testing.T) {
	s := &recordingSurface{}
	v := New(s)

	if err := v.Update(context.Background(), &dataview.UpdateOptions{}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if err := v.Update(context.Background(), nil); err != nil {
		t.Fatalf("Update(nil) error: %v", err)
	}
	if len(s.scenes) != 0 {
		t.Errorf("no draw expected, got %d", len(s.scenes))
	}
	if _, ok := v.ViewModel(); ok {
		t.Error("ViewModel() should be unset")
	}
}

func TestUpdateUsesDataView(t *testing.T) {
	dv := dataview.DataView{
		Metadata: &dataview.Metadata{
			Objects: dataview.Objects{
				settings.ObjectSymbol: {settings.PropSymbol: "★"},
			},
		},
		Categorical: &dataview.Categorical{
			Values: []dataview.ValueColumn{{
				Source: dataview.Column{DisplayName: "Sales", Roles: map[string]bool{settings.RoleValue: true}},
				Values: []any{1.0},
			}},
		},
	}

	s := &recordingSurface{}
	v := New(s)
	if err := v.Update(context.Background(), update(200, 200, dv)); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	scene := s.scenes[0]
	if scene.Label.Text != "★" {
		t.Errorf("label = %q", scene.Label.Text)
	}
	if scene.Circle.StrokeHex != settings.DefaultMaxColor {
		t.Errorf("stroke = %s, want %s", scene.Circle.StrokeHex, settings.DefaultMaxColor)
	}
	if scene.Tooltip != "1" {
		t.Errorf("tooltip = %q", scene.Tooltip)
	}
}

func TestUpdateWithDefaults(t *testing.T) {
	d := settings.Builtin()
	d.Value = 0
	s := &recordingSurface{}
	v := New(s, WithDefaults(d))
	if err := v.Update(context.Background(), update(50, 50)); err != nil {
		t.Fatal(err)
	}
	if got := s.scenes[0].Circle.StrokeHex; got != settings.DefaultMinColor {
		t.Errorf("stroke = %s, want %s", got, settings.DefaultMinColor)
	}
}

func TestUpdateDrawError(t *testing.T) {
	boom := errors.New("boom")
	v := New(&recordingSurface{err: boom})
	if err := v.Update(context.Background(), update(50, 50)); !errors.Is(err, boom) {
		t.Errorf("Update() error = %v, want boom", err)
	}
	if _, ok := v.ViewModel(); ok {
		t.Error("failed draw should not retain the view-model")
	}
}

func TestEnumerate(t *testing.T) {
	v := New(&recordingSurface{})

	if got := v.EnumerateObjectInstances(settings.ObjectTarget); got == nil || len(got) != 0 {
		t.Errorf("before update: %v, want empty", got)
	}

	if err := v.Update(context.Background(), update(100, 100)); err != nil {
		t.Fatal(err)
	}

	got := v.EnumerateObjectInstances(settings.ObjectStroke)
	if len(got) != 1 {
		t.Fatalf("stroke instances = %d, want 1", len(got))
	}
	if got[0].Properties[settings.PropWidth] != settings.DefaultStrokeWidth {
		t.Errorf("stroke width = %v", got[0].Properties[settings.PropWidth])
	}
	if got[0].Selector != nil {
		t.Errorf("selector = %v, want nil", got[0].Selector)
	}

	if got := v.EnumerateObjectInstances("legend"); len(got) != 0 {
		t.Errorf("unknown group: %v", got)
	}

	v.Destroy()
	if got := v.EnumerateObjectInstances(settings.ObjectStroke); len(got) != 0 {
		t.Errorf("after Destroy: %v", got)
	}
}

func TestSVGSurface(t *testing.T) {
	s := NewSVGSurface()
	v := New(s)
	if s.Bytes() != nil {
		t.Error("new surface should be empty")
	}

	if err := v.Update(context.Background(), update(100, 100)); err != nil {
		t.Fatal(err)
	}
	svg := string(s.Bytes())
	if !strings.HasPrefix(svg, "<svg") || !strings.Contains(svg, "<circle") {
		t.Errorf("unexpected SVG:\n%s", svg)
	}

	s.Clear()
	if s.Bytes() != nil {
		t.Error("Clear should empty the surface")
	}
}
