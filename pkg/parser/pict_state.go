package parser

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/dimelords/rtfdom/pkg/common"
	"github.com/dimelords/rtfdom/pkg/state"
)

// pictState accumulates a hex-dump image payload and its attribute bag
// from a {\pict ...} destination. It bypasses the byte-by-byte niceties
// of the Main state's character dispatch: every non-whitespace character
// not inside the \*\blipuid sub-destination is hex payload.
type pictState struct {
	attrs ImageAttributes

	hex          strings.Builder
	inBlipUID    bool
	blipUIDHex   strings.Builder
	haveUniqueID bool
	awaitingStar bool
}

func newPictState() *pictState {
	return &pictState{}
}

func (s *pictState) OnOpenBrace(p *Parser) {}

func (s *pictState) OnCloseBrace(p *Parser, old, newState state.Effective) {
	switch p.relDepth() {
	case -1:
		s.finish(p)
	case 0:
		if s.inBlipUID {
			s.inBlipUID = false
			if !s.haveUniqueID {
				if raw, err := hex.DecodeString(evenHex(s.blipUIDHex.String())); err == nil {
					s.attrs.BlipUID = string(raw)
					s.haveUniqueID = true
				}
			}
		}
	}
}

func (s *pictState) finish(p *Parser) {
	data, err := hex.DecodeString(s.hex.String())
	if err != nil {
		// Truncated hex or an odd digit count: drop this image, leave the
		// rest of the document unaffected.
		p.Logger().Warn("dropping image with undecodable hex payload",
			"source", s.attrs.Source, "err", common.WrapError("pict", "decode", common.ErrTruncatedImage))
		return
	}
	p.fireImage(s.attrs, data)
}

// evenHex drops a final unpaired hex digit so a truncated \*\blipuid value
// still decodes the portion that arrived cleanly, rather than failing outright.
func evenHex(s string) string {
	if len(s)%2 != 0 {
		return s[:len(s)-1]
	}
	return s
}

func (s *pictState) OnControl(p *Parser, raw, word string, param int, hasParam bool) error {
	rd := p.relDepth()

	if rd == 1 {
		switch {
		case word == `\*`:
			s.awaitingStar = true
			return nil
		case s.awaitingStar && word == `\blipuid`:
			s.inBlipUID = true
			s.awaitingStar = false
			return nil
		default:
			s.awaitingStar = false
			return nil
		}
	}

	if rd != 0 {
		return nil
	}

	switch word {
	case `\jpegblip`:
		s.attrs.Source = "jpeg"
	case `\pngblip`:
		s.attrs.Source = "png"
	case `\emfblip`:
		s.attrs.Source = "emf"
	}

	if !hasParam {
		return nil
	}

	switch word {
	case `\picscalex`:
		s.attrs.ScaleX = param
	case `\picscaley`:
		s.attrs.ScaleY = param
	case `\piccropl`:
		s.attrs.CropL = param
	case `\piccropr`:
		s.attrs.CropR = param
	case `\piccropt`:
		s.attrs.CropT = param
	case `\piccropb`:
		s.attrs.CropB = param
	case `\picw`:
		s.attrs.W = param
	case `\pich`:
		s.attrs.H = param
	case `\picwgoal`:
		s.attrs.WGoal = param
	case `\pichgoal`:
		s.attrs.HGoal = param
	case `\picbpp`:
		s.attrs.Bpp = param
	case `\wbmbitspixel`:
		s.attrs.WBitsPixel = param
	case `\wbmplanes`:
		s.attrs.WPlanes = param
	case `\wbmwidthbytes`:
		s.attrs.WWidthBytes = param
	case `\pmmetafile`:
		s.attrs.Source = "metafile"
		s.attrs.MetafileType = param
	case `\wmetafile`:
		s.attrs.Source = "wmf"
		s.attrs.MetafileMappingMode = param
	case `\dibitmap`:
		s.attrs.Source = "dib"
		s.attrs.BitmapType = strconv.Itoa(param)
	case `\wbitmap`:
		s.attrs.Source = "wbmp"
		s.attrs.BitmapType = strconv.Itoa(param)
	case `\bliptag`:
		if !s.haveUniqueID {
			s.attrs.BlipTag = param
			s.haveUniqueID = true
		}
	}
	return nil
}

func (s *pictState) OnCharacter(p *Parser, ch byte) error {
	rd := p.relDepth()
	if rd >= 1 {
		if s.inBlipUID && isHexDigit(ch) {
			s.blipUIDHex.WriteByte(ch)
		}
		return nil
	}
	if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
		return nil
	}
	s.hex.WriteByte(ch)
	return nil
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
