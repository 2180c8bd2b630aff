package model

import "maps"

// StyleTree keeps raw style values for a node keyed by
// device -> orientation -> pseudo -> property. Any level may be absent and
// absence is distinct from a stored empty string.
//
// StyleTree values are treated as immutable: With and Without return new
// trees sharing nothing with the receiver along the modified path.
type StyleTree map[string]map[string]map[string]map[string]string

// Lookup returns stored value and whether it is present.
func (st StyleTree) Lookup(device, orientation, pseudo, property string) (string, bool) {
	v, ok := st[device][orientation][pseudo][property]
	return v, ok
}

// Properties returns raw property map stored at exact context, may be nil.
func (st StyleTree) Properties(device, orientation, pseudo string) map[string]string {
	return st[device][orientation][pseudo]
}

// With returns a copy of the tree with value stored at the given path.
func (st StyleTree) With(device, orientation, pseudo, property, value string) StyleTree {
	out := st.Clone()
	if out == nil {
		out = make(StyleTree)
	}
	byOrientation := out[device]
	if byOrientation == nil {
		byOrientation = make(map[string]map[string]map[string]string)
		out[device] = byOrientation
	}
	byPseudo := byOrientation[orientation]
	if byPseudo == nil {
		byPseudo = make(map[string]map[string]string)
		byOrientation[orientation] = byPseudo
	}
	props := byPseudo[pseudo]
	if props == nil {
		props = make(map[string]string)
		byPseudo[pseudo] = props
	}
	props[property] = value
	return out
}

// Without returns a copy of the tree with property removed from the given
// path. Levels left empty are pruned.
func (st StyleTree) Without(device, orientation, pseudo, property string) StyleTree {
	if _, ok := st.Lookup(device, orientation, pseudo, property); !ok {
		return st
	}
	out := st.Clone()
	delete(out[device][orientation][pseudo], property)
	if len(out[device][orientation][pseudo]) == 0 {
		delete(out[device][orientation], pseudo)
	}
	if len(out[device][orientation]) == 0 {
		delete(out[device], orientation)
	}
	if len(out[device]) == 0 {
		delete(out, device)
	}
	return out
}

// Merge returns new tree with every value from overrides placed on top of the
// receiver.
func (st StyleTree) Merge(overrides StyleTree) StyleTree {
	out := st.Clone()
	for d, byOrientation := range overrides {
		for o, byPseudo := range byOrientation {
			for p, props := range byPseudo {
				for k, v := range props {
					out = out.With(d, o, p, k, v)
				}
			}
		}
	}
	return out
}

// Clone creates a deep copy of the tree.
func (st StyleTree) Clone() StyleTree {
	if st == nil {
		return nil
	}
	out := make(StyleTree, len(st))
	for d, byOrientation := range st {
		o2 := make(map[string]map[string]map[string]string, len(byOrientation))
		for o, byPseudo := range byOrientation {
			p2 := make(map[string]map[string]string, len(byPseudo))
			for p, props := range byPseudo {
				p2[p] = maps.Clone(props)
			}
			o2[o] = p2
		}
		out[d] = o2
	}
	return out
}

// Len returns number of stored values.
func (st StyleTree) Len() int {
	var n int
	for _, byOrientation := range st {
		for _, byPseudo := range byOrientation {
			for _, props := range byPseudo {
				n += len(props)
			}
		}
	}
	return n
}
