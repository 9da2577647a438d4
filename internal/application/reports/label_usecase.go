package reports

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/sahil-erp/internal/application/dto"
	"github.com/jhoicas/sahil-erp/internal/domain"
)

// LabelUseCase arma hojas de etiquetas con código de barras (y QR opcional).
type LabelUseCase struct {
	generator LabelSheetGenerator
}

// NewLabelUseCase construye el caso de uso.
func NewLabelUseCase(generator LabelSheetGenerator) *LabelUseCase {
	return &LabelUseCase{generator: generator}
}

// BuildLabelSheet un producto sin código de barras usa su ID como código.
func (uc *LabelUseCase) BuildLabelSheet(ctx context.Context, src Source, in dto.LabelSheetRequest) ([]byte, string, error) {
	if len(in.ProductIDs) == 0 {
		return nil, "", domain.ErrInvalidInput
	}
	copies := in.Copies
	if copies <= 0 {
		copies = 1
	}
	labels := make([]Label, 0, len(in.ProductIDs)*copies)
	for _, id := range in.ProductIDs {
		p, err := src.Product(ctx, id)
		if err != nil {
			return nil, "", err
		}
		if p == nil {
			return nil, "", fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		code := p.Barcode
		if code == "" {
			code = p.ID
		}
		detail := strings.Join(nonEmpty(p.Size, p.Color, location(*p)), " · ")
		for i := 0; i < copies; i++ {
			labels = append(labels, Label{Name: p.Name, Barcode: code, Price: p.Price.StringFixed(2), Detail: detail})
		}
	}
	pdf, err := uc.generator.GenerateLabelSheet(ctx, labels, in.WithQR)
	if err != nil {
		return nil, "", fmt.Errorf("labels: generación fallida: %w", err)
	}
	return pdf, "labels.pdf", nil
}

func nonEmpty(ss ...string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
