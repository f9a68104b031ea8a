package bykebiten

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/oliverbestmann/glowmenu/byke"
	"github.com/oliverbestmann/glowmenu/gm"
)

var _ = byke.ValidateComponent[Bloom]()

var ErrUnknownBloomCompositeMode = errors.New("unknown bloom composite mode")

type BloomCompositeMode uint8

const (
	// BloomEnergyConserving blends bloom and scene, the total brightness stays the same.
	BloomEnergyConserving BloomCompositeMode = iota

	// BloomAdditive adds the bloom on top of the scene.
	BloomAdditive
)

func (m BloomCompositeMode) String() string {
	switch m {
	case BloomEnergyConserving:
		return "EnergyConserving"
	case BloomAdditive:
		return "Additive"
	default:
		return fmt.Sprintf("BloomCompositeMode(%d)", uint8(m))
	}
}

func (m BloomCompositeMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *BloomCompositeMode) UnmarshalText(text []byte) error {
	switch {
	case strings.EqualFold(string(text), "EnergyConserving"):
		*m = BloomEnergyConserving
	case strings.EqualFold(string(text), "Additive"):
		*m = BloomAdditive
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBloomCompositeMode, text)
	}

	return nil
}

// BloomPrefilter selects which parts of the image contribute to the bloom.
type BloomPrefilter struct {
	// Colors with a brightness below the threshold do not bloom.
	Threshold float64

	// Softens the cut at the threshold. A value of 0 is a hard cut, a value of 1 a
	// smooth transition starting at zero brightness.
	ThresholdSoftness float64
}

// Bloom enables the bloom post-processing effect on an HDR camera.
type Bloom struct {
	byke.ComparableComponent[Bloom]

	// Baseline of the bloom strength.
	Intensity float64

	// Strength of the low frequency, wide spreading part of the bloom.
	LowFrequencyBoost float64

	// Curvature of the low frequency boost between the smallest and largest mip.
	LowFrequencyBoostCurvature float64

	// Fraction of mips that contribute, starting at the largest one.
	HighPassFrequency float64

	Prefilter     BloomPrefilter
	CompositeMode BloomCompositeMode

	// Size of the largest side of the first mip. More mips give a wider glow.
	MaxMipDimension uint32
}

// DefaultBloom returns a natural looking bloom configuration.
func DefaultBloom() Bloom {
	return Bloom{
		Intensity:                  0.15,
		LowFrequencyBoost:          0.7,
		LowFrequencyBoostCurvature: 0.95,
		HighPassFrequency:          1.0,
		CompositeMode:              BloomEnergyConserving,
		MaxMipDimension:            512,
	}
}

// OldSchoolBloom returns a strong additive bloom with a threshold.
func OldSchoolBloom() Bloom {
	return Bloom{
		Intensity:                  0.05,
		LowFrequencyBoost:          0.7,
		LowFrequencyBoostCurvature: 0.95,
		HighPassFrequency:          1.0,
		Prefilter: BloomPrefilter{
			Threshold:         0.6,
			ThresholdSoftness: 0.2,
		},
		CompositeMode:   BloomAdditive,
		MaxMipDimension: 512,
	}
}

// BlendFactor returns the weight with which the given mip is blended into the next larger one.
// maxMip is the index of the smallest mip.
func (b Bloom) BlendFactor(mip, maxMip float64) float64 {
	if maxMip <= 0 {
		return b.Intensity
	}

	progress := mip / maxMip

	lfBoost := (1 - math.Pow(1-progress, 1/(1-b.LowFrequencyBoostCurvature))) * b.LowFrequencyBoost

	highPassLq := 1 - clamp((progress-b.HighPassFrequency)/b.HighPassFrequency, 0, 1)

	if b.CompositeMode == BloomEnergyConserving {
		lfBoost *= 1 - b.Intensity
	}

	return (b.Intensity + lfBoost) * highPassLq
}

// thresholdPrecomputations returns the soft knee values used by the prefilter shader.
func (p BloomPrefilter) thresholdPrecomputations() [4]float32 {
	knee := p.Threshold * clamp(p.ThresholdSoftness, 0, 1)

	return [4]float32{
		float32(p.Threshold),
		float32(p.Threshold - knee),
		float32(2 * knee),
		float32(0.25 / (knee + 0.00001)),
	}
}

// bloomMipCount returns the number of mips used for the given max mip dimension.
func bloomMipCount(maxMipDimension uint32) int {
	log2 := bits.Len32(maxMipDimension) - 1
	return max(log2, 2) - 1
}

// bloomMipSizes returns the size of each mip for a viewport of the given size. The
// first mip is scaled so its larger side matches maxMipDimension.
func bloomMipSizes(viewport gm.Vec, maxMipDimension uint32) []gm.Vec {
	scale := float64(maxMipDimension) / max(viewport.X, viewport.Y)

	width := max(1, int(math.Round(viewport.X*scale)))
	height := max(1, int(math.Round(viewport.Y*scale)))

	count := bloomMipCount(maxMipDimension)
	sizes := make([]gm.Vec, 0, count)

	for mip := range count {
		sizes = append(sizes, gm.Vec{
			X: float64(max(1, width>>mip)),
			Y: float64(max(1, height>>mip)),
		})
	}

	return sizes
}

func clamp(value, lower, upper float64) float64 {
	return min(max(value, lower), upper)
}

// bloomTargets holds the offscreen images of one HDR camera.
type bloomTargets struct {
	viewport gm.Vec
	maxMip   uint32

	// the scene is rendered into this image with colors divided by the headroom
	hdr *ebiten.Image

	// the bloom mip chain, mips[0] is the largest one
	mips []*ebiten.Image

	// scratch images, one per mip, used to resample between mip levels
	scratch []*ebiten.Image

	// the largest mip, scaled up to the viewport size
	full *ebiten.Image
}

func (t *bloomTargets) ensure(viewport gm.Vec, maxMipDimension uint32) {
	if t.hdr != nil && t.viewport == viewport && t.maxMip == maxMipDimension {
		return
	}

	t.dispose()

	t.viewport = viewport
	t.maxMip = maxMipDimension

	width, height := int(viewport.X), int(viewport.Y)
	t.hdr = ebiten.NewImage(width, height)
	t.full = ebiten.NewImage(width, height)

	for _, size := range bloomMipSizes(viewport, maxMipDimension) {
		t.mips = append(t.mips, ebiten.NewImage(int(size.X), int(size.Y)))
		t.scratch = append(t.scratch, ebiten.NewImage(int(size.X), int(size.Y)))
	}
}

func (t *bloomTargets) dispose() {
	for _, image := range t.mips {
		image.Deallocate()
	}

	for _, image := range t.scratch {
		image.Deallocate()
	}

	if t.hdr != nil {
		t.hdr.Deallocate()
		t.full.Deallocate()
	}

	t.hdr, t.full = nil, nil
	t.mips, t.scratch = nil, nil
}

// resample draws the source image scaled to the size of the target image.
func resample(target, source *ebiten.Image) {
	targetSize := imageSizeOf(target)
	sourceSize := imageSizeOf(source)

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(targetSize.X/sourceSize.X, targetSize.Y/sourceSize.Y)
	op.Filter = ebiten.FilterLinear
	op.Blend = ebiten.BlendCopy

	target.DrawImage(source, &op)
}

// applyBloom computes the bloom mip chain from the hdr image. The result is
// available in t.full, ready to be composited with the hdr image.
func (t *bloomTargets) applyBloom(bloom Bloom) {
	shader := bloomBlurShader()

	blur := func(target, source *ebiten.Image, uniforms bloomBlurUniforms, colorScale float32, blend ebiten.Blend) {
		size := source.Bounds().Size()

		var op ebiten.DrawRectShaderOptions
		op.Images[0] = source
		op.Uniforms = uniformsOf(uniforms)
		op.ColorScale.Scale(colorScale, colorScale, colorScale, colorScale)
		op.Blend = blend

		target.DrawRectShader(size.X, size.Y, shader, &op)
	}

	// first downsample applies the prefilter
	resample(t.scratch[0], t.hdr)
	blur(t.mips[0], t.scratch[0], bloomBlurUniforms{
		Prefilter: 1,
		Threshold: bloom.Prefilter.thresholdPrecomputations(),
		Headroom:  HDRHeadroom,
	}, 1, ebiten.BlendCopy)

	// downsample into the smaller mips
	for mip := 1; mip < len(t.mips); mip++ {
		resample(t.scratch[mip], t.mips[mip-1])
		blur(t.mips[mip], t.scratch[mip], bloomBlurUniforms{}, 1, ebiten.BlendCopy)
	}

	maxMip := float64(len(t.mips) - 1)
	blend := bloomBlend(bloom.CompositeMode)

	// upsample and blend into the next larger mip
	for mip := len(t.mips) - 1; mip > 0; mip-- {
		factor := bloom.BlendFactor(float64(mip), maxMip)

		resample(t.scratch[mip-1], t.mips[mip])
		blur(t.mips[mip-1], t.scratch[mip-1], bloomBlurUniforms{}, float32(factor), blend)
	}

	resample(t.full, t.mips[0])
}

// bloomBlend blends the source scaled by the blend factor into the target. The blend
// factor is applied through the color scale, which also scales the alpha of the
// otherwise opaque source.
func bloomBlend(mode BloomCompositeMode) ebiten.Blend {
	blend := ebiten.Blend{
		BlendFactorSourceRGB:        ebiten.BlendFactorOne,
		BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	}

	if mode == BloomAdditive {
		blend.BlendFactorDestinationRGB = ebiten.BlendFactorOne
	}

	return blend
}

type bloomBlurUniforms struct {
	Prefilter float32
	Threshold [4]float32
	Headroom  float32
}

type bloomCompositeUniforms struct {
	Headroom         float32
	BloomFactor      float32
	EnergyConserving float32
	Tonemapping      float32
}

// composite draws the hdr image with the bloom applied onto the target and maps
// the colors back to the displayable range.
func (t *bloomTargets) composite(target *ebiten.Image, bloom *Bloom, tonemapping TonemappingMethod) {
	uniforms := bloomCompositeUniforms{
		Headroom:    HDRHeadroom,
		Tonemapping: float32(tonemapping),
	}

	if bloom != nil {
		maxMip := float64(len(t.mips) - 1)
		uniforms.BloomFactor = float32(bloom.BlendFactor(0, maxMip))

		if bloom.CompositeMode == BloomEnergyConserving {
			uniforms.EnergyConserving = 1
		}
	} else {
		// no bloom, keep the scene as is
		t.full.Clear()
		uniforms.EnergyConserving = 1
	}

	size := t.hdr.Bounds().Size()

	var op ebiten.DrawRectShaderOptions
	op.Images[0] = t.hdr
	op.Images[1] = t.full
	op.Uniforms = uniformsOf(uniforms)
	op.Blend = ebiten.BlendCopy

	target.DrawRectShader(size.X, size.Y, bloomCompositeShader(), &op)
}
