package gallery

import (
	"context"

	"github.com/nonibytes/gallery/gallery/ops"
)

type BatchOpKind int

const (
	batchPut BatchOpKind = iota
	batchDelete
)

type BatchOp struct {
	Kind      BatchOpKind
	Doc       *ops.ArtworkDoc // for put
	ArtworkID int64           // for delete
}

type Batch struct {
	ops []BatchOp
}

func NewBatch() Batch {
	return Batch{ops: make([]BatchOp, 0)}
}

// PutJSON validates doc now so a bad document fails before anything is written.
func (b *Batch) PutJSON(doc []byte) error {
	parsed, err := ops.ParseArtworkDoc(doc)
	if err != nil {
		return Wrap(ErrSchema, "artwork document", err)
	}
	b.ops = append(b.ops, BatchOp{Kind: batchPut, Doc: parsed})
	return nil
}

func (b *Batch) Delete(artworkID int64) error {
	if artworkID <= 0 {
		return New(ErrInvalid, "artwork id must be positive")
	}
	b.ops = append(b.ops, BatchOp{Kind: batchDelete, ArtworkID: artworkID})
	return nil
}

func (b *Batch) Len() int {
	return len(b.ops)
}

func (b *Batch) Empty() bool {
	return len(b.ops) == 0
}

// Execute is implemented on Catalog to keep storage access internal
func (b *Batch) Execute(ctx context.Context, c *Catalog) (int, error) {
	return c.Batch(ctx, *b)
}
