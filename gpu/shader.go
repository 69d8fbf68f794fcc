package gpu

import "github.com/hajimehoshi/ebiten/v2"

// MaxTextures is the number of source images one batch can sample.
const MaxTextures = 4

// batchShaderSrc samples the image selected by the vertex's texture unit
// (custom.x) and multiplies by the premultiplied vertex color.
const batchShaderSrc = `//kage:unit pixels
package main

func Fragment(dst vec4, src vec2, color vec4, custom vec4) vec4 {
	unit := custom.x
	var c vec4
	if unit < 0.5 {
		c = imageSrc0At(src)
	} else if unit < 1.5 {
		c = imageSrc1At(src)
	} else if unit < 2.5 {
		c = imageSrc2At(src)
	} else {
		c = imageSrc3At(src)
	}
	return c * color
}
`

// Lazily compiled; bough is single-threaded.
var batchShader *ebiten.Shader

func ensureBatchShader() *ebiten.Shader {
	if batchShader == nil {
		s, err := ebiten.NewShader([]byte(batchShaderSrc))
		if err != nil {
			panic("bough/gpu: failed to compile batch shader: " + err.Error())
		}
		batchShader = s
	}
	return batchShader
}
