package runtime_test

import (
	"testing"

	"github.com/psucodervn/packrat/runtime"
)

const twoAnimManifest = `
schema_version = 1
package_name = "demo"
output = "demo.prpk"

[[images]]
id = "hero_img"
path = "hero.png"

[[images]]
id = "villain_img"
path = "hero.png"

[[sprites]]
id = "hero"
source = "hero_img"
mode = "single"

[[sprites]]
id = "villain"
source = "villain_img"
mode = "single"

[[animations]]
id = "hero_idle"
sprite = "hero"
frames = [ { index = 0, ms = 100 } ]

[[animations]]
id = "villain_idle"
sprite = "villain"
frames = [ { index = 0, ms = 100 } ]
`

func openFixture(t *testing.T) *runtime.Package {
	t.Helper()
	outPath := buildFixture(t, twoAnimManifest)
	pkg, err := runtime.OpenFile(outPath)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	return pkg
}

func TestResolveSpriteBindingBySpriteOnly(t *testing.T) {
	pkg := openFixture(t)
	sprite, anim, err := pkg.ResolveSpriteBinding("villain", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sprite.ID() != "villain" {
		t.Errorf("sprite.ID() = %q, want villain", sprite.ID())
	}
	if anim != nil {
		t.Errorf("expected no animation resolved, got %+v", anim)
	}
}

func TestResolveSpriteBindingByAnimationOnly(t *testing.T) {
	pkg := openFixture(t)
	sprite, anim, err := pkg.ResolveSpriteBinding("", "hero_idle")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sprite.ID() != "hero" {
		t.Errorf("sprite.ID() = %q, want hero (derived from the animation)", sprite.ID())
	}
	if anim == nil || anim.ID() != "hero_idle" {
		t.Errorf("expected animation hero_idle, got %+v", anim)
	}
}

func TestResolveSpriteBindingBothConsistent(t *testing.T) {
	pkg := openFixture(t)
	sprite, anim, err := pkg.ResolveSpriteBinding("hero", "hero_idle")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sprite.ID() != "hero" || anim.ID() != "hero_idle" {
		t.Errorf("unexpected resolution: sprite=%q anim=%q", sprite.ID(), anim.ID())
	}
}

func TestResolveSpriteBindingMismatchErrors(t *testing.T) {
	pkg := openFixture(t)
	if _, _, err := pkg.ResolveSpriteBinding("villain", "hero_idle"); err == nil {
		t.Fatalf("expected error when animation's sprite differs from the requested sprite")
	}
}

func TestResolveSpriteBindingUnknownErrors(t *testing.T) {
	pkg := openFixture(t)
	if _, _, err := pkg.ResolveSpriteBinding("nope", ""); err == nil {
		t.Fatalf("expected error for unknown sprite id")
	}
	if _, _, err := pkg.ResolveSpriteBinding("", "nope"); err == nil {
		t.Fatalf("expected error for unknown animation id")
	}
}

func TestResolveSpriteBindingNeitherSuppliedErrors(t *testing.T) {
	pkg := openFixture(t)
	if _, _, err := pkg.ResolveSpriteBinding("", ""); err == nil {
		t.Fatalf("expected error when neither sprite_id nor animation_id is supplied")
	}
}
