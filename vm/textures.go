package vm

import "github.com/benjcooley/milo832/sampler"

// BindTexture installs a texture into one of the 8 texture slots. unit
// outside [0, NumTextures) is a no-op.
func (v *VM) BindTexture(unit int, tex *sampler.Texture) {
	if unit < 0 || unit >= NumTextures {
		return
	}
	v.Textures[unit] = tex
}
