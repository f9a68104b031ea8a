package bykebiten

import (
	"embed"
	"fmt"
	"reflect"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/oliverbestmann/glowmenu/bykebiten/color"
	"github.com/oliverbestmann/glowmenu/gm"
)

//go:embed shaders/*.kage
var shaderSources embed.FS

var bloomBlurShader = compileShaderOnce("shaders/bloom_blur.kage")
var bloomCompositeShader = compileShaderOnce("shaders/bloom_composite.kage")

// compileShaderOnce compiles the embedded shader the first time it is used.
// Shaders are part of the binary, a failure to compile is a bug and panics.
func compileShaderOnce(name string) func() *ebiten.Shader {
	return sync.OnceValue(func() *ebiten.Shader {
		source, err := shaderSources.ReadFile(name)
		if err != nil {
			panic(fmt.Errorf("read shader %q: %w", name, err))
		}

		shader, err := ebiten.NewShader(source)
		if err != nil {
			panic(fmt.Errorf("compile shader %q: %w", name, err))
		}

		return shader
	})
}

// uniformsOf takes uniform values from a struct value. It iterates over the
// exported fields of the struct and uses the field names as uniform names.
func uniformsOf(value any) map[string]any {
	rv := reflect.ValueOf(value)
	ty := rv.Type()

	if ty.Kind() != reflect.Struct {
		err := fmt.Errorf("uniformsOf must be called with a struct type, got %s", ty.Kind())
		panic(err)
	}

	uniforms := make(map[string]any, ty.NumField())

	for idx := range rv.NumField() {
		field := ty.Field(idx)
		if field.Anonymous || !field.IsExported() {
			continue
		}

		uniforms[field.Name] = toUniformValue(rv.Field(idx).Interface())
	}

	return uniforms
}

func toUniformValue(value any) any {
	switch value := value.(type) {
	case float64:
		return float32(value)

	case gm.Vec:
		return [2]float32{float32(value.X), float32(value.Y)}

	case color.Color:
		r, g, b, a := value.Values()
		return [4]float32{r, g, b, a}

	default:
		return value
	}
}
