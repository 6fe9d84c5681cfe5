package system

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/campfire/ecs"
	"github.com/milk9111/campfire/ecs/component"
	"github.com/milk9111/campfire/paint"
	"github.com/milk9111/campfire/scene"
	"golang.org/x/image/colornames"
)

// emissiveGlowMax is the intensity at which the glow pass saturates.
const emissiveGlowMax = 4.0

const glowPadding = 6.0

// RenderSystem draws trigger volumes and avatars. Each material slot of an
// avatar is a horizontal band tinted by the slot's current properties, with
// an additive glow proportional to its emissive intensity.
type RenderSystem struct {
	pixel  *ebiten.Image
	effect *paint.Effect
	Debug  bool
}

func NewRenderSystem(effect *paint.Effect) *RenderSystem {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &RenderSystem{pixel: pixel, effect: effect}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	r.drawVolumes(w, screen)

	avatars := w.Query(component.AvatarComponent.Kind().ID(), component.TransformComponent.Kind().ID(), component.MeshComponent.Kind().ID())
	sort.SliceStable(avatars, func(i, j int) bool {
		return uint64(avatars[i]) < uint64(avatars[j])
	})
	for _, e := range avatars {
		r.drawAvatar(w, screen, e)
	}
}

func (r *RenderSystem) drawVolumes(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach2(w, component.TriggerVolumeComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, v *component.TriggerVolume, t *component.Transform) {
		x := float32(t.X - v.Width/2)
		y := float32(t.Y - v.Height/2)
		fill, stroke := volumeColors(v.Role)
		vector.FillRect(screen, x, y, float32(v.Width), float32(v.Height), fill, false)
		vector.StrokeRect(screen, x, y, float32(v.Width), float32(v.Height), 1.0, stroke, false)
	})
}

func volumeColors(role component.TriggerRole) (fill, stroke color.Color) {
	switch role {
	case component.TriggerBurn:
		return color.RGBA{R: 255, G: 69, A: 64}, colornames.Orangered
	case component.TriggerWarm:
		return color.RGBA{R: 255, G: 165, A: 32}, colornames.Orange
	default:
		return color.RGBA{R: 128, G: 128, B: 128, A: 32}, colornames.Gray
	}
}

func (r *RenderSystem) drawAvatar(w *ecs.World, screen *ebiten.Image, e ecs.Entity) {
	avatar, _ := ecs.Get(w, e, component.AvatarComponent.Kind())
	t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	mesh, _ := ecs.Get(w, e, component.MeshComponent.Kind())
	if avatar == nil || t == nil || mesh == nil || !mesh.Visible || len(mesh.Materials) == 0 {
		return
	}

	left := t.X - avatar.Width/2
	top := t.Y - avatar.Height/2
	band := avatar.Height / float64(len(mesh.Materials))

	for i, mat := range mesh.Materials {
		y := top + float64(i)*band
		r.drawRect(screen, left, y, avatar.Width, band, mat.Properties.Tint, 1, ebiten.Blend{})

		glow := mat.Properties.EmissiveIntensity / emissiveGlowMax
		if glow <= 0 {
			continue
		}
		r.drawRect(screen, left-glowPadding, y-glowPadding, avatar.Width+2*glowPadding, band+2*glowPadding, mat.Properties.Tint, min(glow, 1), ebiten.BlendLighter)
	}

	vector.StrokeRect(screen, float32(left), float32(top), float32(avatar.Width), float32(avatar.Height), 1.0, colornames.Black, false)

	if r.Debug {
		label := avatar.Name
		if state, ok := r.effect.State(scene.ObjectID(e)); ok {
			label = fmt.Sprintf("%s (%s)", avatar.Name, state)
		}
		ebitenutil.DebugPrintAt(screen, label, int(left), int(top-16))
	}
}

// drawRect fills a rectangle with c, scaled by strength. The zero Blend is
// source-over.
func (r *RenderSystem) drawRect(screen *ebiten.Image, x, y, width, height float64, c paint.Color, strength float64, blend ebiten.Blend) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(width, height)
	op.GeoM.Translate(x, y)
	a := float32(c.A * strength)
	op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
	op.Blend = blend
	screen.DrawImage(r.pixel, op)
}
