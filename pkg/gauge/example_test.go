package gauge_test

import (
	"fmt"

	"github.com/matzehuels/ringgauge/pkg/gauge"
	"github.com/matzehuels/ringgauge/pkg/settings"
)

func ExampleStrokeColor() {
	vm := settings.Builtin().ViewModel()
	for _, v := range []float64{0, 0.5, 0.75, 1} {
		vm.CurrentValue = v
		fmt.Println(v, gauge.StrokeColor(vm).Hex())
	}
	// Output:
	// 0 #fd625e
	// 0.5 #f2c80f
	// 0.75 #7ac05d
	// 1 #01b8aa
}

func ExampleBuild() {
	vm := settings.Builtin().ViewModel()
	s := gauge.Build(vm, 100, 50)
	fmt.Printf("r=%.2f stroke=%.2f font=%.1f\n", s.Circle.R, s.Circle.StrokeWidth, s.Label.FontSize)
	// Output:
	// r=19.83 stroke=7.93 font=19.5
}
