package handlers

import (
	"log"

	"github.com/amirphl/Izanagi/app/middleware"
	businessflow "github.com/amirphl/Izanagi/business_flow"
	"github.com/gofiber/fiber/v3"
)

// IncomeHandler handles business income reporting HTTP requests
type IncomeHandler struct {
	incomeFlow businessflow.IncomeFlow
}

// NewIncomeHandler creates a new income handler
func NewIncomeHandler(incomeFlow businessflow.IncomeFlow) *IncomeHandler {
	return &IncomeHandler{incomeFlow: incomeFlow}
}

// ListIncomes returns the calling business' income ledger
// @Summary List Incomes
// @Description List the incomes booked for the business with client and ad details
// @Tags Incomes
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListIncomesResponse} "Incomes listed"
// @Security BearerAuth
// @Router /api/v1/businesses/incomes [get]
func (h *IncomeHandler) ListIncomes(c fiber.Ctx) error {
	businessID, ok := middleware.GetSubjectIDFromContext(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	result, err := h.incomeFlow.ListIncomes(requestContext(c), businessID.String())
	if err != nil {
		log.Println("Income listing failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to list incomes", "INCOME_LIST_FAILED", nil)
	}
	return successResponse(c, fiber.StatusOK, "Incomes listed", result)
}

// ExportIncomes downloads the income ledger as an xlsx workbook
// @Summary Export Incomes
// @Description Download the business income report as an Excel file
// @Tags Incomes
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary "Income report"
// @Security BearerAuth
// @Router /api/v1/businesses/incomes/export [get]
func (h *IncomeHandler) ExportIncomes(c fiber.Ctx) error {
	businessID, ok := middleware.GetSubjectIDFromContext(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	data, err := h.incomeFlow.ExportIncomes(requestContext(c), businessID.String())
	if err != nil {
		log.Println("Income export failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to export incomes", "INCOME_EXPORT_FAILED", nil)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="incomes.xlsx"`)
	return c.Send(data)
}
