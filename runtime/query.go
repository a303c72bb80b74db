package runtime

import "github.com/psucodervn/packrat/status"

// SpriteCount returns the number of sprites in the package.
func (pkg *Package) SpriteCount() int { return len(pkg.sprites) }

// AnimationCount returns the number of animations in the package.
func (pkg *Package) AnimationCount() int { return len(pkg.animations) }

// AtlasPageCount returns the number of atlas pages, 0 when the
// package carries no TXTR chunk.
func (pkg *Package) AtlasPageCount() int { return len(pkg.pages) }

// SpriteAt returns the sprite at the given index.
func (pkg *Package) SpriteAt(i int) (Sprite, bool) {
	if i < 0 || i >= len(pkg.sprites) {
		return Sprite{}, false
	}
	return Sprite{pkg: pkg, index: i}, true
}

// AnimationAt returns the animation at the given index.
func (pkg *Package) AnimationAt(i int) (Animation, bool) {
	if i < 0 || i >= len(pkg.animations) {
		return Animation{}, false
	}
	return Animation{pkg: pkg, index: i}, true
}

// AtlasPageAt returns the decoded pixel buffer for atlas page i.
func (pkg *Package) AtlasPageAt(i int) (AtlasPage, bool) {
	if i < 0 || i >= len(pkg.pages) {
		return AtlasPage{}, false
	}
	p := pkg.pages[i]
	return AtlasPage{Width: int(p.width), Height: int(p.height), Pixels: p.pixels}, true
}

// FindSprite does a linear scan for the sprite with the given id. The
// format carries no index structure (spec: "no indexing structure
// required"), so every lookup is O(N).
func (pkg *Package) FindSprite(id string) (Sprite, bool) {
	for i, s := range pkg.sprites {
		if pkg.stringAt(s.nameStrIdx) == id {
			return Sprite{pkg: pkg, index: i}, true
		}
	}
	return Sprite{}, false
}

// FindAnimation does a linear scan for the animation with the given
// id.
func (pkg *Package) FindAnimation(id string) (Animation, bool) {
	for i, a := range pkg.animations {
		if pkg.stringAt(a.nameStrIdx) == id {
			return Animation{pkg: pkg, index: i}, true
		}
	}
	return Animation{}, false
}

// ResolveSpriteBinding implements the combined sprite/animation
// lookup: the animation resolves first when supplied (error if
// unknown), then the sprite id (error if unknown); when both are
// supplied, the animation's owning sprite must equal the looked-up
// sprite. At least one of the two ids must be supplied and resolve.
func (pkg *Package) ResolveSpriteBinding(spriteID, animationID string) (Sprite, *Animation, error) {
	var anim *Animation
	if animationID != "" {
		a, ok := pkg.FindAnimation(animationID)
		if !ok {
			return Sprite{}, nil, status.New(status.InvalidArgument, "unknown animation id %q", animationID)
		}
		anim = &a
	}

	var sprite Sprite
	haveSprite := false
	if spriteID != "" {
		s, ok := pkg.FindSprite(spriteID)
		if !ok {
			return Sprite{}, nil, status.New(status.InvalidArgument, "unknown sprite id %q", spriteID)
		}
		sprite = s
		haveSprite = true
	}

	switch {
	case anim != nil && haveSprite:
		if anim.SpriteIndex() != sprite.Index() {
			return Sprite{}, nil, status.New(status.InvalidArgument, "animation %q does not belong to sprite %q", animationID, spriteID)
		}
		return sprite, anim, nil
	case anim != nil:
		return anim.Sprite(), anim, nil
	case haveSprite:
		return sprite, nil, nil
	default:
		return Sprite{}, nil, status.New(status.InvalidArgument, "resolve_sprite_binding requires at least one of sprite_id or animation_id")
	}
}
