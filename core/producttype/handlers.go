package producttype

// BaseHandler carries the descriptor handed over by Registry.Factory and the
// defaults shared by every builtin type.
type BaseHandler struct {
	config Descriptor
}

// SetConfig implements Handler.
func (b *BaseHandler) SetConfig(d Descriptor) { b.config = d }

// Config implements Handler.
func (b *BaseHandler) Config() Descriptor { return b.config }

// TypeID implements Handler.
func (b *BaseHandler) TypeID() string { return b.config.ID }

// IsComposite implements Handler.
func (b *BaseHandler) IsComposite() bool { return b.config.Composite }

// IsVirtual implements Handler.
func (b *BaseHandler) IsVirtual() bool { return false }

// HasWeight implements Handler.
func (b *BaseHandler) HasWeight() bool { return true }

// Simple is the handler of physical stand-alone products.
type Simple struct {
	BaseHandler
}

// Virtual is the handler of products without shipping.
type Virtual struct {
	BaseHandler
}

func (*Virtual) IsVirtual() bool { return true }
func (*Virtual) HasWeight() bool { return false }

// Bundle groups selections of other products. Its weight is fixed unless the
// "dynamic_weight" custom setting is on.
type Bundle struct {
	BaseHandler
	DynamicWeight bool `json:"dynamic_weight"`
}

// HasWeight is true when the bundle weight is fixed.
func (b *Bundle) HasWeight() bool { return !b.DynamicWeight }
