package jtree

import (
	"log/slog"
)

// Extension is a set of opt-in deviations from the strict JSON grammar
type Extension uint32

const (
	// ExtSingleLineComments allows // comments
	ExtSingleLineComments Extension = 1 << iota
	// ExtMultiLineComments allows /* */ comments
	ExtMultiLineComments
	// ExtTrailingDecimal allows a decimal point without fraction digits: [1.] is [1.0], [1.e1] is still invalid
	ExtTrailingDecimal
	// ExtOctalLiterals allows octal integers with a leading zero: 0100 is 64. No fraction or exponent
	ExtOctalLiterals
	// ExtHexLiterals allows hexadecimal integers: 0xFF is 255. No fraction
	ExtHexLiterals
	// ExtUnicodeReplacement replaces invalid UTF-8 and lone surrogates in strings with U+FFFD instead of failing
	ExtUnicodeReplacement
	// ExtIgnoreBOM skips the UTF-8 byte order mark at the start of the input
	ExtIgnoreBOM
	// ExtAllowDuplicateKeys accepts repeated object keys, the last pair wins
	ExtAllowDuplicateKeys
	// ExtAnyTopLevel accepts any value at the top level, not only objects and arrays
	ExtAnyTopLevel
)

const (
	// ExtNone is the strict grammar
	ExtNone Extension = 0
	// ExtComments allows both comment styles
	ExtComments = ExtSingleLineComments | ExtMultiLineComments
	// ExtDefault is the extension set used when none is specified
	ExtDefault = ExtIgnoreBOM | ExtAllowDuplicateKeys | ExtAnyTopLevel
	// ExtAll enables every extension
	ExtAll Extension = 0xffffffff
)

// AnyDepth disables the nesting depth limit
const AnyDepth = -1

// Config is the read-only configuration of a decoder
type Config struct {
	Extensions Extension
	// MaxDepth is the maximum nesting of arrays and objects, AnyDepth for no limit
	MaxDepth int
	// TabWidth is the number of columns a tab character advances the column by
	TabWidth int
	// Allocator is used for every allocation of the decoded tree
	Allocator Allocator
	// Growth is the capacity policy of decoded arrays and objects
	Growth Growth
	// MaxInput limits the number of bytes DecodeReader accepts, 0 for no limit
	MaxInput int64
	// Logger receives decode failures at debug level. Nothing is logged if nil
	Logger *slog.Logger
}

// DefaultConfig returns the configuration used when no options are passed
func DefaultConfig() Config {
	return Config{
		Extensions: ExtDefault,
		MaxDepth:   AnyDepth,
		TabWidth:   4,
		Allocator:  Heap,
		Growth:     DefaultGrowth,
	}
}

type options struct {
	cfg Config

	// Value.Decode
	str       bool
	enc       Encoding
	noUnknown bool
	tag       string
}

func newOptions(op []Option) *options {
	o := &options{cfg: DefaultConfig(), tag: "json"}
	return o.apply(op)
}

func (o *options) apply(opts []Option) *options {
	for _, fn := range opts {
		fn(o)
	}
	if o.cfg.Allocator == nil {
		o.cfg.Allocator = Heap
	}
	if o.cfg.TabWidth < 0 {
		o.cfg.TabWidth = 0
	}
	return o
}

// Option is the function pointer used to pass options to Decode, Unmarshal and Value.Decode
type Option func(*options)

// OpConfig replaces the whole decoder configuration
func OpConfig(c Config) Option { return func(o *options) { o.cfg = c } }

// OpExtensions sets the grammar extensions
func OpExtensions(ext Extension) Option { return func(o *options) { o.cfg.Extensions = ext } }

// OpMaxDepth limits the nesting depth. Use AnyDepth for no limit
func OpMaxDepth(n int) Option { return func(o *options) { o.cfg.MaxDepth = n } }

// OpTabWidth sets the number of columns a tab advances the reported column by
func OpTabWidth(n int) Option { return func(o *options) { o.cfg.TabWidth = n } }

// OpAllocator sets the allocator of the decoded tree
func OpAllocator(a Allocator) Option { return func(o *options) { o.cfg.Allocator = a } }

// OpGrowth sets the capacity policy of decoded containers
func OpGrowth(g Growth) Option { return func(o *options) { o.cfg.Growth = g } }

// OpMaxInput limits the input size accepted by DecodeReader
func OpMaxInput(n int64) Option { return func(o *options) { o.cfg.MaxInput = n } }

// OpLogger sets the logger receiving decode failures
func OpLogger(l *slog.Logger) Option { return func(o *options) { o.cfg.Logger = l } }

// OpString makes Value.Decode convert between strings, numbers and booleans where the target type requires it
func OpString(o *options) { o.str = true }

// OpEncoding specifies the binary encoding scheme used by Value.Decode to convert strings into byte slices.
// Without this option the string bytes are copied as is
func OpEncoding(e Encoding) Option { return func(o *options) { o.enc = e } }

// OpDisallowUnknownFields causes Value.Decode to return an error when the destination is a struct
// and the object contains keys which do not match any field in the destination
func OpDisallowUnknownFields(o *options) { o.noUnknown = true }

// OpTagName sets the struct tag used by Value.Decode. The default is "json"
func OpTagName(name string) Option { return func(o *options) { o.tag = name } }
