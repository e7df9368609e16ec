package adapter

import (
	"fmt"

	"github.com/dogechain-lab/fastrlp"

	"github.com/dogechain-lab/objectchain/types"
)

var (
	moduleArenaPool  fastrlp.ArenaPool
	moduleParserPool fastrlp.ParserPool
)

// EncodeModule packs a module for publishing as the list [name, code]
func EncodeModule(name string, code []byte) []byte {
	ar := moduleArenaPool.Get()
	defer moduleArenaPool.Put(ar)

	vv := ar.NewArray()
	vv.Set(ar.NewCopyBytes([]byte(name)))
	vv.Set(ar.NewCopyBytes(code))

	return vv.MarshalTo(nil)
}

// DecodeModule unpacks a published module. Malformed input is an
// ErrInvalidModule, never a panic.
func DecodeModule(raw []byte) (string, []byte, error) {
	p := moduleParserPool.Get()
	defer moduleParserPool.Put(p)

	v, err := p.Parse(raw)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", types.ErrInvalidModule, err)
	}

	elems, err := v.GetElems()
	if err != nil || len(elems) != 2 {
		return "", nil, fmt.Errorf("%w: expected [name, code]", types.ErrInvalidModule)
	}

	name, err := elems[0].GetBytes(nil)
	if err != nil {
		return "", nil, fmt.Errorf("%w: name: %v", types.ErrInvalidModule, err)
	}

	code, err := elems[1].GetBytes(nil)
	if err != nil {
		return "", nil, fmt.Errorf("%w: code: %v", types.ErrInvalidModule, err)
	}

	if !isIdentifier(string(name)) {
		return "", nil, fmt.Errorf("%w: bad module name %q", types.ErrInvalidModule, name)
	}

	if len(code) == 0 {
		return "", nil, fmt.Errorf("%w: module %s has no code", types.ErrInvalidModule, name)
	}

	return string(name), code, nil
}

func isIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}

	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}

	return true
}
