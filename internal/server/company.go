package server

import (
	"net/http"

	companydomain "github.com/anish-1308/ibilling/internal/company/domain"
	"github.com/gin-gonic/gin"
)

// @Summary      Get Company Profile
// @Description  Get the agency profile and billing defaults
// @Tags         company
// @Produce      json
// @Success      200  {object}  companydomain.Profile
// @Router       /company [get]
func (s *Server) GetCompanyProfile(c *gin.Context) {
	resp, err := s.companySvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Company Profile
// @Description  Apply a partial profile edit, including the default VAT rate
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        request body companydomain.UpdateProfileRequest true "Update Request"
// @Success      200  {object}  companydomain.Profile
// @Router       /company [patch]
func (s *Server) UpdateCompanyProfile(c *gin.Context) {
	var req companydomain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.companySvc.Update(c.Request.Context(), req, actorFrom(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "company.update", "company_profile", "", map[string]any{
		"tax_rate": resp.TaxRate.String(),
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
