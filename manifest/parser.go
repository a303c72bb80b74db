package manifest

import (
	"strconv"
	"strings"

	"github.com/psucodervn/packrat/diag"
)

// parseTarget is the "current section" tag of the intrusive state
// machine described in spec §9 ("Intrusive state machine in the
// manifest parser"): current_section, current_image, current_sprite,
// current_rect, current_animation.
type parseTarget int

const (
	targetRoot parseTarget = iota
	targetAtlas
	targetImage
	targetSprite
	targetRect
	targetAnimation
	targetNone // header itself was invalid; skip assignments until the next header
)

type scalarKind int

const (
	scalarString scalarKind = iota
	scalarInt
	scalarFloat
	scalarBool
)

type scalar struct {
	kind scalarKind
	str  string
	i    int64
	f    float64
	b    bool
	line int
}

type parser struct {
	data []byte
	pos  int
	line int
	path string
	sink diag.Sink

	errorCount int

	m *Manifest

	target       parseTarget
	curImage     *Image
	curSprite    *Sprite
	curRect      *Rect
	curAnimation *Animation
}

// Parse tokenizes and parses the restricted TOML-subset grammar of
// spec §4.1 into a Manifest tree. It returns the manifest (possibly
// partial) and the number of parse-level errors encountered; callers
// must treat errorCount > 0 as a hard parse failure and discard the
// partial tree, per spec §4.1.
func Parse(path string, src []byte, sink diag.Sink) (*Manifest, int) {
	p := &parser{
		data: src,
		line: 1,
		path: path,
		sink: sink,
		m:    &Manifest{},
	}
	p.run()
	return p.m, p.errorCount
}

func (p *parser) emit(severity diag.Severity, line int, code, message string) {
	if severity == diag.Error {
		p.errorCount++
	}
	diag.Emit(p.sink, diag.Diagnostic{
		Severity: severity,
		Message:  message,
		File:     p.path,
		Line:     line,
		Code:     code,
	})
}

func (p *parser) errorf(line int, code, message string) { p.emit(diag.Error, line, code, message) }
func (p *parser) warnf(line int, code, message string)  { p.emit(diag.Warning, line, code, message) }

func (p *parser) eof() bool { return p.pos >= len(p.data) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.data[p.pos]
}

func (p *parser) peekAt(off int) byte {
	if p.pos+off >= len(p.data) {
		return 0
	}
	return p.data[p.pos+off]
}

func (p *parser) advance() byte {
	c := p.data[p.pos]
	p.pos++
	if c == '\n' {
		p.line++
	}
	return c
}

// skipHSpace skips spaces, tabs and carriage returns (not newlines).
func (p *parser) skipHSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\r':
			p.advance()
		default:
			return
		}
	}
}

// skipHSpaceAndComment additionally swallows a trailing `# ...` comment,
// stopping just before the newline (or EOF).
func (p *parser) skipHSpaceAndComment() {
	p.skipHSpace()
	if p.peek() == '#' {
		for !p.eof() && p.peek() != '\n' {
			p.advance()
		}
	}
}

// skipInsignificant skips whitespace, comments and newlines — used
// inside bracketed constructs where newlines carry no meaning.
func (p *parser) skipInsignificant() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\r', '\n':
			p.advance()
		case '#':
			for !p.eof() && p.peek() != '\n' {
				p.advance()
			}
		default:
			return
		}
	}
}

func (p *parser) resyncToNewline() {
	for !p.eof() && p.peek() != '\n' {
		p.advance()
	}
	if !p.eof() {
		p.advance()
	}
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (p *parser) readIdent() string {
	start := p.pos
	for !p.eof() && isIdentByte(p.peek()) {
		p.advance()
	}
	return string(p.data[start:p.pos])
}

func (p *parser) run() {
	for {
		p.skipHSpaceAndComment()
		if p.eof() {
			return
		}
		if p.peek() == '\n' {
			p.advance()
			continue
		}
		if p.peek() == '[' {
			p.parseHeader()
			continue
		}
		p.parseAssignment()
	}
}

func (p *parser) parseHeader() {
	headerLine := p.line
	p.advance() // '['
	double := false
	if p.peek() == '[' {
		double = true
		p.advance()
	}

	var segs []string
	for {
		p.skipHSpace()
		seg := p.readIdent()
		if seg == "" {
			p.errorf(headerLine, CodeSectionUnknown, "malformed section header")
			p.target = targetNone
			p.resyncToNewline()
			return
		}
		segs = append(segs, seg)
		p.skipHSpace()
		if p.peek() == '.' {
			p.advance()
			continue
		}
		break
	}

	if p.peek() != ']' {
		p.errorf(headerLine, CodeSectionUnknown, "expected ']' closing section header")
		p.target = targetNone
		p.resyncToNewline()
		return
	}
	p.advance()
	if double {
		if p.peek() != ']' {
			p.errorf(headerLine, CodeSectionUnknown, "expected ']]' closing array-of-tables header")
			p.target = targetNone
			p.resyncToNewline()
			return
		}
		p.advance()
	}

	p.skipHSpaceAndComment()
	if !p.eof() && p.peek() != '\n' {
		p.errorf(headerLine, CodeSectionUnknown, "unexpected content after section header")
		p.resyncToNewline()
	} else if !p.eof() {
		p.advance()
	}

	p.dispatchHeader(segs, double, headerLine)
}

func (p *parser) dispatchHeader(segs []string, double bool, line int) {
	switch {
	case !double && len(segs) == 1 && segs[0] == "atlas":
		p.m.Atlas.Line = line
		p.target = targetAtlas
		p.curSprite, p.curRect, p.curImage, p.curAnimation = nil, nil, nil, nil

	case double && len(segs) == 1 && segs[0] == "images":
		p.m.Images = append(p.m.Images, Image{Line: line})
		p.curImage = &p.m.Images[len(p.m.Images)-1]
		p.target = targetImage
		p.curSprite, p.curRect, p.curAnimation = nil, nil, nil

	case double && len(segs) == 1 && segs[0] == "sprites":
		p.m.Sprites = append(p.m.Sprites, Sprite{Line: line})
		p.curSprite = &p.m.Sprites[len(p.m.Sprites)-1]
		p.target = targetSprite
		p.curImage, p.curRect, p.curAnimation = nil, nil, nil

	case double && len(segs) == 2 && segs[0] == "sprites" && segs[1] == "rects":
		if p.curSprite == nil {
			p.errorf(line, CodeSpritesNoActiveBlock, "[[sprites.rects]] with no active [[sprites]] block")
			p.target = targetNone
			return
		}
		p.curSprite.Rects = append(p.curSprite.Rects, Rect{Line: line})
		p.curRect = &p.curSprite.Rects[len(p.curSprite.Rects)-1]
		p.target = targetRect

	case double && len(segs) == 1 && segs[0] == "animations":
		p.m.Animations = append(p.m.Animations, Animation{Line: line})
		p.curAnimation = &p.m.Animations[len(p.m.Animations)-1]
		p.target = targetAnimation
		p.curImage, p.curSprite, p.curRect = nil, nil, nil

	default:
		p.errorf(line, CodeSectionUnknown, "unknown section '"+strings.Join(segs, ".")+"'")
		p.target = targetNone
	}
}

func (p *parser) parseAssignment() {
	key := p.readIdent()
	if key == "" {
		p.errorf(p.line, CodeInvalidAssignment, "expected a key")
		p.resyncToNewline()
		return
	}
	p.skipHSpace()
	if p.peek() != '=' {
		p.errorf(p.line, CodeInvalidAssignment, "expected '=' after key '"+key+"'")
		p.resyncToNewline()
		return
	}
	p.advance()
	p.skipHSpace()

	if p.target == targetAnimation && key == "frames" {
		p.parseFramesArray()
		p.finishLine()
		return
	}

	val, ok := p.parseScalar()
	if !ok {
		p.resyncToNewline()
		return
	}
	p.finishLineWith(key, val)
}

// finishLineWith consumes trailing whitespace/comment/newline then
// dispatches the (key, value) pair to the active target.
func (p *parser) finishLineWith(key string, val scalar) {
	p.skipHSpaceAndComment()
	if !p.eof() && p.peek() != '\n' {
		p.errorf(val.line, CodeInvalidAssignment, "unexpected content after value for '"+key+"'")
		p.resyncToNewline()
	} else if !p.eof() {
		p.advance()
	}
	p.assign(key, val)
}

func (p *parser) finishLine() {
	p.skipHSpaceAndComment()
	if !p.eof() && p.peek() != '\n' {
		p.errorf(p.line, CodeInvalidAssignment, "unexpected content after value")
		p.resyncToNewline()
	} else if !p.eof() {
		p.advance()
	}
}

func (p *parser) parseScalar() (scalar, bool) {
	line := p.line
	switch c := p.peek(); {
	case c == '"':
		return p.parseQuotedString()
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	case isIdentByte(c):
		word := p.readIdent()
		switch word {
		case "true":
			return scalar{kind: scalarBool, b: true, line: line}, true
		case "false":
			return scalar{kind: scalarBool, b: false, line: line}, true
		default:
			p.errorf(line, CodeInvalidAssignment, "unrecognized literal '"+word+"'")
			return scalar{}, false
		}
	default:
		p.errorf(line, CodeInvalidAssignment, "expected a value")
		return scalar{}, false
	}
}

func (p *parser) parseQuotedString() (scalar, bool) {
	line := p.line
	p.advance() // opening quote
	var b strings.Builder
	for {
		if p.eof() || p.peek() == '\n' {
			p.errorf(line, CodeStringUnterminated, "unterminated string literal")
			return scalar{}, false
		}
		c := p.advance()
		if c == '"' {
			return scalar{kind: scalarString, str: b.String(), line: line}, true
		}
		if c == '\\' {
			if p.eof() {
				p.errorf(line, CodeStringUnterminated, "unterminated string literal")
				return scalar{}, false
			}
			e := p.advance()
			switch e {
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(e)
			}
			continue
		}
		b.WriteByte(c)
	}
}

func (p *parser) parseNumber() (scalar, bool) {
	line := p.line
	start := p.pos
	if p.peek() == '-' {
		p.advance()
	}
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.advance()
	}
	isFloat := false
	if p.peek() == '.' && p.peekAt(1) >= '0' && p.peekAt(1) <= '9' {
		isFloat = true
		p.advance()
		for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
			p.advance()
		}
	}
	text := string(p.data[start:p.pos])
	if text == "" || text == "-" {
		p.errorf(line, CodeInvalidAssignment, "expected a number")
		return scalar{}, false
	}
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			p.errorf(line, CodeInvalidAssignment, "invalid floating point literal '"+text+"'")
			return scalar{}, false
		}
		return scalar{kind: scalarFloat, f: f, line: line}, true
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		p.errorf(line, CodeInvalidAssignment, "invalid integer literal '"+text+"'")
		return scalar{}, false
	}
	return scalar{kind: scalarInt, i: i, line: line}, true
}

// parseFramesArray parses `frames = [ { index = N, ms = M }, ... ]`,
// tracking bracket depth across lines per spec §4.1.
func (p *parser) parseFramesArray() {
	line := p.line
	if p.peek() != '[' {
		p.errorf(line, CodeFramesNotArray, "'frames' must be an array")
		p.resyncToNewline()
		return
	}
	p.advance()
	p.curAnimation.HasFrames = true

	for {
		p.skipInsignificant()
		if p.eof() {
			p.errorf(line, CodeArrayUnterminated, "unterminated 'frames' array")
			return
		}
		if p.peek() == ']' {
			p.advance()
			return
		}
		if p.peek() != '{' {
			p.errorf(p.line, CodeFramesInlineTableWant, "expected '{ index = ..., ms = ... }' entry")
			p.skipToBoundary()
		} else {
			p.parseFrameEntry()
		}
		p.skipInsignificant()
		if p.peek() == ',' {
			p.advance()
			continue
		}
		if p.peek() == ']' {
			p.advance()
			return
		}
		p.errorf(p.line, CodeArrayUnterminated, "expected ',' or ']' in 'frames' array")
		return
	}
}

// skipToBoundary skips a malformed frames-array element up to (but
// not including) the next top-level ',' or ']'.
func (p *parser) skipToBoundary() {
	depth := 0
	for !p.eof() {
		switch p.peek() {
		case '{':
			depth++
			p.advance()
		case '}':
			depth--
			p.advance()
		case ',', ']':
			if depth <= 0 {
				return
			}
			p.advance()
		default:
			p.advance()
		}
	}
}

func (p *parser) parseFrameEntry() {
	line := p.line
	p.advance() // '{'
	frame := AnimationFrame{Line: line}

	for {
		p.skipInsignificant()
		if p.eof() {
			p.errorf(line, CodeFramesUnterminated, "unterminated frame table")
			break
		}
		if p.peek() == '}' {
			p.advance()
			break
		}
		fkey := p.readIdent()
		if fkey == "" {
			p.errorf(p.line, CodeFramesInvalidPair, "expected a field name in frame table")
			p.skipToBoundary()
			break
		}
		p.skipHSpace()
		if p.peek() != '=' {
			p.errorf(p.line, CodeFramesInvalidPair, "expected '=' after '"+fkey+"'")
			p.skipToBoundary()
			break
		}
		p.advance()
		p.skipHSpace()
		val, ok := p.parseNumber()
		switch fkey {
		case "index":
			if !ok || val.kind != scalarInt {
				p.errorf(val.line, CodeFramesIndexInvalid, "'index' must be an integer")
			} else {
				frame.Index = int(val.i)
				frame.HasIndex = true
			}
		case "ms":
			if !ok || val.kind != scalarInt {
				p.errorf(val.line, CodeFramesMsInvalid, "'ms' must be an integer")
			} else {
				frame.Ms = int(val.i)
				frame.HasMs = true
			}
		default:
			p.errorf(line, CodeFramesUnknownField, "unknown field '"+fkey+"' in frame table")
		}
		if !ok {
			p.skipToBoundary()
		}
		p.skipInsignificant()
		if p.peek() == ',' {
			p.advance()
			continue
		}
		if p.peek() == '}' {
			p.advance()
			break
		}
		p.errorf(p.line, CodeFramesUnterminated, "expected ',' or '}' in frame table")
		break
	}

	if !frame.HasIndex || !frame.HasMs {
		p.errorf(line, CodeFramesMissingFields, "frame table requires both 'index' and 'ms'")
	}
	p.curAnimation.Frames = append(p.curAnimation.Frames, frame)
}

func (p *parser) assign(key string, v scalar) {
	switch p.target {
	case targetRoot:
		p.assignRoot(key, v)
	case targetAtlas:
		p.assignAtlas(key, v)
	case targetImage:
		p.assignImage(key, v)
	case targetSprite:
		p.assignSprite(key, v)
	case targetRect:
		p.assignRect(key, v)
	case targetAnimation:
		p.assignAnimation(key, v)
	case targetNone:
		// header was invalid; diagnostic already emitted there.
	}
}

func (p *parser) wantString(key string, v scalar, code string) (string, bool) {
	if v.kind != scalarString {
		p.errorf(v.line, code, "'"+key+"' must be a string")
		return "", false
	}
	return v.str, true
}

func (p *parser) wantInt(key string, v scalar, code string) (int, bool) {
	if v.kind != scalarInt {
		p.errorf(v.line, code, "'"+key+"' must be an integer")
		return 0, false
	}
	return int(v.i), true
}

func (p *parser) wantNumber(key string, v scalar, code string) (float64, bool) {
	switch v.kind {
	case scalarInt:
		return float64(v.i), true
	case scalarFloat:
		return v.f, true
	default:
		p.errorf(v.line, code, "'"+key+"' must be a number")
		return 0, false
	}
}

func (p *parser) wantBool(key string, v scalar, code string) (bool, bool) {
	if v.kind != scalarBool {
		p.errorf(v.line, code, "'"+key+"' must be a boolean")
		return false, false
	}
	return v.b, true
}

func (p *parser) assignRoot(key string, v scalar) {
	m := p.m
	switch key {
	case "schema_version":
		if n, ok := p.wantInt(key, v, CodeSchemaVersionInvalid); ok {
			m.SchemaVersion, m.HasSchemaVersion = n, true
		}
	case "package_name":
		if s, ok := p.wantString(key, v, CodePackageNameInvalid); ok {
			m.PackageName, m.HasPackageName = s, true
		}
	case "output":
		if s, ok := p.wantString(key, v, CodeOutputInvalid); ok {
			m.Output, m.HasOutput = s, true
		}
	case "debug_output":
		if s, ok := p.wantString(key, v, CodeDebugOutputInvalid); ok {
			m.DebugOutput, m.HasDebugOutput = s, true
		}
	case "pretty_debug_json":
		if b, ok := p.wantBool(key, v, CodePrettyDebugJSONInvalid); ok {
			m.PrettyDebugJSON, m.HasPrettyDebugJSON = b, true
		}
	default:
		p.errorf(v.line, CodeUnknownRootKey, "unknown root key '"+key+"'")
	}
}

func (p *parser) assignAtlas(key string, v scalar) {
	a := &p.m.Atlas
	switch key {
	case "max_page_width":
		if n, ok := p.wantInt(key, v, CodeAtlasMaxWidthInvalid); ok {
			a.MaxPageWidth, a.HasMaxPageWidth = n, true
		}
	case "max_page_height":
		if n, ok := p.wantInt(key, v, CodeAtlasMaxHeightInvalid); ok {
			a.MaxPageHeight, a.HasMaxPageHeight = n, true
		}
	case "padding":
		if n, ok := p.wantInt(key, v, CodeAtlasPaddingInvalid); ok {
			a.Padding, a.HasPadding = n, true
		}
	case "power_of_two":
		if b, ok := p.wantBool(key, v, CodeAtlasPowerOfTwoInvalid); ok {
			a.PowerOfTwo, a.HasPowerOfTwo = b, true
		}
	case "sampling":
		if s, ok := p.wantString(key, v, CodeAtlasSamplingInvalid); ok {
			a.Sampling, a.HasSampling = s, true
		}
	default:
		p.errorf(v.line, CodeAtlasUnknownKey, "unknown atlas key '"+key+"'")
	}
}

func (p *parser) assignImage(key string, v scalar) {
	if p.curImage == nil {
		p.errorf(v.line, CodeImagesNoActiveBlock, "assignment outside any [[images]] block")
		return
	}
	img := p.curImage
	switch key {
	case "id":
		if s, ok := p.wantString(key, v, CodeImagesIDInvalid); ok {
			img.ID, img.HasID = s, true
		}
	case "path":
		if s, ok := p.wantString(key, v, CodeImagesPathInvalid); ok {
			img.Path, img.HasPath = s, true
		}
	case "premultiply_alpha":
		if b, ok := p.wantBool(key, v, CodeImagesPremultiplyAlphaInvalid); ok {
			img.PremultiplyAlpha, img.HasPremultiplyAlpha = b, true
		}
	case "color_space":
		if s, ok := p.wantString(key, v, CodeImagesColorSpaceInvalid); ok {
			img.ColorSpace, img.HasColorSpace = s, true
		}
	default:
		p.errorf(v.line, CodeImagesUnknownKey, "unknown image key '"+key+"'")
	}
}

func (p *parser) assignSprite(key string, v scalar) {
	if p.curSprite == nil {
		p.errorf(v.line, CodeSpritesNoActiveBlock, "assignment outside any [[sprites]] block")
		return
	}
	s := p.curSprite
	switch key {
	case "id":
		if val, ok := p.wantString(key, v, CodeSpritesIDInvalid); ok {
			s.ID, s.HasID = val, true
		}
	case "source":
		if val, ok := p.wantString(key, v, CodeSpritesSourceInvalid); ok {
			s.Source, s.HasSource = val, true
		}
	case "mode":
		if val, ok := p.wantString(key, v, CodeSpritesModeInvalid); ok {
			s.Mode, s.HasMode = val, true
		}
	case "pivot_x":
		if val, ok := p.wantNumber(key, v, CodeSpritesPivotXInvalid); ok {
			s.PivotX, s.HasPivotX = val, true
		}
	case "pivot_y":
		if val, ok := p.wantNumber(key, v, CodeSpritesPivotYInvalid); ok {
			s.PivotY, s.HasPivotY = val, true
		}
	case "x":
		if val, ok := p.wantInt(key, v, CodeSpritesXInvalid); ok {
			s.X, s.HasX = val, true
		}
	case "y":
		if val, ok := p.wantInt(key, v, CodeSpritesYInvalid); ok {
			s.Y, s.HasY = val, true
		}
	case "w":
		if val, ok := p.wantInt(key, v, CodeSpritesWInvalid); ok {
			s.W, s.HasW = val, true
		}
	case "h":
		if val, ok := p.wantInt(key, v, CodeSpritesHInvalid); ok {
			s.H, s.HasH = val, true
		}
	case "cell_w":
		if val, ok := p.wantInt(key, v, CodeSpritesCellWInvalid); ok {
			s.CellW, s.HasCellW = val, true
		}
	case "cell_h":
		if val, ok := p.wantInt(key, v, CodeSpritesCellHInvalid); ok {
			s.CellH, s.HasCellH = val, true
		}
	case "frame_start":
		if val, ok := p.wantInt(key, v, CodeSpritesFrameStartInvalid); ok {
			s.FrameStart, s.HasFrameStart = val, true
		}
	case "frame_count":
		if val, ok := p.wantInt(key, v, CodeSpritesFrameCountInvalid); ok {
			s.FrameCount, s.HasFrameCount = val, true
		}
	case "margin_x":
		if val, ok := p.wantInt(key, v, CodeSpritesMarginXInvalid); ok {
			s.MarginX, s.HasMarginX = val, true
		}
	case "margin_y":
		if val, ok := p.wantInt(key, v, CodeSpritesMarginYInvalid); ok {
			s.MarginY, s.HasMarginY = val, true
		}
	case "spacing_x":
		if val, ok := p.wantInt(key, v, CodeSpritesSpacingXInvalid); ok {
			s.SpacingX, s.HasSpacingX = val, true
		}
	case "spacing_y":
		if val, ok := p.wantInt(key, v, CodeSpritesSpacingYInvalid); ok {
			s.SpacingY, s.HasSpacingY = val, true
		}
	default:
		p.errorf(v.line, CodeSpritesUnknownKey, "unknown sprite key '"+key+"'")
	}
}

func (p *parser) assignRect(key string, v scalar) {
	if p.curRect == nil {
		p.errorf(v.line, CodeSpritesNoActiveBlock, "assignment outside any [[sprites.rects]] block")
		return
	}
	r := p.curRect
	switch key {
	case "x":
		if val, ok := p.wantInt(key, v, CodeRectsXInvalid); ok {
			r.X, r.HasX = val, true
		}
	case "y":
		if val, ok := p.wantInt(key, v, CodeRectsYInvalid); ok {
			r.Y, r.HasY = val, true
		}
	case "w":
		if val, ok := p.wantInt(key, v, CodeRectsWInvalid); ok {
			r.W, r.HasW = val, true
		}
	case "h":
		if val, ok := p.wantInt(key, v, CodeRectsHInvalid); ok {
			r.H, r.HasH = val, true
		}
	case "label":
		if val, ok := p.wantString(key, v, CodeRectsUnknownKey); ok {
			r.Label, r.HasLabel = val, true
		}
	default:
		p.errorf(v.line, CodeRectsUnknownKey, "unknown rect key '"+key+"'")
	}
}

func (p *parser) assignAnimation(key string, v scalar) {
	if p.curAnimation == nil {
		p.errorf(v.line, CodeAnimationsNoActiveBlock, "assignment outside any [[animations]] block")
		return
	}
	a := p.curAnimation
	switch key {
	case "id":
		if val, ok := p.wantString(key, v, CodeAnimationsIDInvalid); ok {
			a.ID, a.HasID = val, true
		}
	case "sprite":
		if val, ok := p.wantString(key, v, CodeAnimationsSpriteInvalid); ok {
			a.Sprite, a.HasSprite = val, true
		}
	case "loop_mode":
		if val, ok := p.wantString(key, v, CodeAnimationsLoopInvalid); ok {
			a.LoopMode, a.HasLoopMode = val, true
		}
	default:
		p.errorf(v.line, CodeAnimationsUnknownKey, "unknown animation key '"+key+"'")
	}
}
