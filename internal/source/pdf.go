package source

import (
	"context"
	"image"

	"github.com/gen2brain/go-fitz"
)

// FitzPDFSource treats every page of a PDF as one frame.
type FitzPDFSource struct {
	doc   *fitz.Document
	path  string
	dpi   int
	pages int
}

func NewFitzPDFSource(path string, dpi int) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	if dpi <= 0 {
		dpi = 150
	}
	return &FitzPDFSource{doc: doc, path: path, dpi: dpi, pages: doc.NumPage()}, nil
}

func (f *FitzPDFSource) Len() int {
	return f.pages
}

// Fetch renders one page. A fitz document is not safe for concurrent use,
// so each call opens its own handle.
func (f *FitzPDFSource) Fetch(ctx context.Context, index int) (image.Image, error) {
	if err := checkIndex(index, f.pages); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	workerDoc, err := fitz.New(f.path)
	if err != nil {
		return nil, err
	}
	defer workerDoc.Close()
	return workerDoc.ImageDPI(index, float64(f.dpi))
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}
