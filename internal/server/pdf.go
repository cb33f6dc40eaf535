package server

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	companydomain "github.com/smallbiznis/billora/internal/company/domain"
	customerdomain "github.com/smallbiznis/billora/internal/customer/domain"
	"github.com/smallbiznis/billora/internal/providers/pdf"
)

func (s *Server) servePDF(c *gin.Context, doc pdf.Document, filename string) {
	reader, err := s.pdfProvider.Generate(c.Request.Context(), doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// companyProfileOrEmpty lets documents render before the profile has been
// filled in for the first time.
func (s *Server) companyProfileOrEmpty(ctx context.Context) (companydomain.Profile, error) {
	profile, err := s.companySvc.Get(ctx)
	if errors.Is(err, companydomain.ErrNotFound) {
		return companydomain.Profile{}, nil
	}
	return profile, err
}

func customerGetRequest(id string) customerdomain.GetCustomerRequest {
	return customerdomain.GetCustomerRequest{ID: id}
}
