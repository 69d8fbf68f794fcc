package gpu

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/bough"
)

// EbitenBlend returns the ebiten.Blend value corresponding to a blend mode.
// Sources are premultiplied.
func EbitenBlend(b bough.BlendMode) ebiten.Blend {
	switch b {
	case bough.BlendNormal:
		return ebiten.BlendSourceOver
	case bough.BlendAdd:
		return ebiten.BlendLighter
	case bough.BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case bough.BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case bough.BlendErase:
		return ebiten.BlendDestinationOut
	case bough.BlendMask:
		return maskBlend
	default:
		return ebiten.BlendSourceOver
	}
}

// maskBlend keeps the destination where the source has alpha.
var maskBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorZero,
	BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
	BlendFactorDestinationRGB:   ebiten.BlendFactorSourceAlpha,
	BlendFactorDestinationAlpha: ebiten.BlendFactorSourceAlpha,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}
