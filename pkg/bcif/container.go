package bcif

// Data is a data array together with the encoding pipeline describing how it
// is stored on the wire. An empty pipeline is serialized with the default
// ByteArray encoding.
type Data struct {
	array     *Array
	encodings []Encoding
}

// NewData creates a data array with an encoding pipeline.
func NewData(array *Array, encodings ...Encoding) *Data {
	return &Data{array: array, encodings: encodings}
}

// Array returns the logical (decoded) array.
func (d *Data) Array() *Array { return d.array }

// Encodings returns the encoding pipeline. The caller must not modify it.
func (d *Data) Encodings() []Encoding { return d.encodings }

// Column is a data array plus an optional mask marking missing values.
// Both are compressed independently.
type Column struct {
	Data *Data
	Mask *Data
}

// NewColumn creates a column. The mask may be nil.
func NewColumn(data, mask *Data) *Column {
	return &Column{Data: data, Mask: mask}
}

// ordered is an insertion-order preserving string-keyed mapping.
// Setting an existing key updates the value in place and keeps its position.
type ordered[V any] struct {
	keys  []string
	items map[string]V
}

func (o *ordered[V]) set(key string, value V) {
	if o.items == nil {
		o.items = make(map[string]V)
	}
	if _, ok := o.items[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.items[key] = value
}

func (o *ordered[V]) get(key string) (V, bool) {
	v, ok := o.items[key]
	return v, ok
}

func (o *ordered[V]) names() []string { return o.keys }

func (o *ordered[V]) len() int { return len(o.keys) }

// Category is an ordered mapping from column name to Column.
type Category struct {
	cols ordered[*Column]
}

// NewCategory creates an empty category.
func NewCategory() *Category { return &Category{} }

// Set adds or replaces a column, preserving insertion order.
func (c *Category) Set(name string, col *Column) { c.cols.set(name, col) }

// Get returns the column with the given name.
func (c *Category) Get(name string) (*Column, bool) { return c.cols.get(name) }

// Names returns the column names in insertion order.
// The caller must not modify the returned slice.
func (c *Category) Names() []string { return c.cols.names() }

// Len returns the number of columns.
func (c *Category) Len() int { return c.cols.len() }

// Block is an ordered mapping from category name to Category.
type Block struct {
	cats ordered[*Category]
}

// NewBlock creates an empty block.
func NewBlock() *Block { return &Block{} }

// Set adds or replaces a category, preserving insertion order.
func (b *Block) Set(name string, cat *Category) { b.cats.set(name, cat) }

// Get returns the category with the given name.
func (b *Block) Get(name string) (*Category, bool) { return b.cats.get(name) }

// Names returns the category names in insertion order.
// The caller must not modify the returned slice.
func (b *Block) Names() []string { return b.cats.names() }

// Len returns the number of categories.
func (b *Block) Len() int { return b.cats.len() }

// File is an ordered mapping from block name to Block.
type File struct {
	blocks ordered[*Block]
}

// NewFile creates an empty file container.
func NewFile() *File { return &File{} }

// Set adds or replaces a block, preserving insertion order.
func (f *File) Set(name string, block *Block) { f.blocks.set(name, block) }

// Get returns the block with the given name.
func (f *File) Get(name string) (*Block, bool) { return f.blocks.get(name) }

// Names returns the block names in insertion order.
// The caller must not modify the returned slice.
func (f *File) Names() []string { return f.blocks.names() }

// Len returns the number of blocks.
func (f *File) Len() int { return f.blocks.len() }
