package service

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"papelog/internal/domain"
)

// ValidatePDF checks that the uploaded bytes are a readable PDF before
// anything is sent to the backend, and returns the page count.
func ValidatePDF(content []byte) (int, error) {
	if len(content) == 0 {
		return 0, domain.ErrNoFile
	}

	conf := model.NewDefaultConfiguration()
	pdfContext, err := api.ReadValidateAndOptimize(bytes.NewReader(content), conf)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidFile, err)
	}
	return pdfContext.PageCount, nil
}
