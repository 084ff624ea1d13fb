package businessflow

import (
	"bytes"
	"context"
	"fmt"

	"github.com/amirphl/Izanagi/app/dto"
	"github.com/amirphl/Izanagi/models"
	"github.com/amirphl/Izanagi/repository"
	"github.com/amirphl/Izanagi/utils"
	"github.com/xuri/excelize/v2"
)

// IncomeFlow handles business revenue reporting
type IncomeFlow interface {
	ListIncomes(ctx context.Context, businessID string) (*dto.ListIncomesResponse, error)
	ExportIncomes(ctx context.Context, businessID string) ([]byte, error)
}

// IncomeFlowImpl implements the income business flow
type IncomeFlowImpl struct {
	incomeRepo repository.IncomeRepository
}

// NewIncomeFlow creates a new income flow instance
func NewIncomeFlow(incomeRepo repository.IncomeRepository) IncomeFlow {
	return &IncomeFlowImpl{incomeRepo: incomeRepo}
}

// ListIncomes returns the incomes booked for the calling business joined
// with the paying client and the ad that generated each entry.
func (f *IncomeFlowImpl) ListIncomes(ctx context.Context, businessID string) (*dto.ListIncomesResponse, error) {
	rows, err := f.businessIncomes(ctx, businessID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListIncomesResponse{Incomes: make([]dto.IncomeDTO, 0, len(rows))}
	for _, row := range rows {
		resp.Incomes = append(resp.Incomes, ToIncomeDTO(*row))
		resp.Sum += row.Price
	}
	resp.Total = len(resp.Incomes)
	return resp, nil
}

// ExportIncomes renders the business income report as an xlsx workbook
func (f *IncomeFlowImpl) ExportIncomes(ctx context.Context, businessID string) ([]byte, error) {
	rows, err := f.businessIncomes(ctx, businessID)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Incomes"
	file.SetSheetName(file.GetSheetName(0), sheet)

	headers := []string{"Client Name", "Client Email", "Ad Name", "Ad Image", "Price"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, NewBusinessError("INCOME_EXPORT_FAILED", "Failed to render income report", err)
		}
	}

	var sum float64
	for i, row := range rows {
		values := []any{row.Client.Name, row.Client.Email, row.Ad.Name, row.Ad.ImgURL, row.Price}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, NewBusinessError("INCOME_EXPORT_FAILED", "Failed to render income report", err)
			}
		}
		sum += row.Price
	}

	totalCell, _ := excelize.CoordinatesToCellName(len(headers), len(rows)+2)
	labelCell, _ := excelize.CoordinatesToCellName(len(headers)-1, len(rows)+2)
	if err := file.SetCellValue(sheet, labelCell, "Total"); err != nil {
		return nil, NewBusinessError("INCOME_EXPORT_FAILED", "Failed to render income report", err)
	}
	if err := file.SetCellValue(sheet, totalCell, sum); err != nil {
		return nil, NewBusinessError("INCOME_EXPORT_FAILED", "Failed to render income report", err)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, NewBusinessError("INCOME_EXPORT_FAILED", fmt.Sprintf("Failed to write income report: %v", err), err)
	}
	return buf.Bytes(), nil
}

func (f *IncomeFlowImpl) businessIncomes(ctx context.Context, businessID string) ([]*models.IncomeAllData, error) {
	id, err := utils.ParseUUID(businessID)
	if err != nil {
		return nil, NewBusinessError("INVALID_BUSINESS_ID", "Business id must be a valid UUID", err)
	}

	rows, err := f.incomeRepo.BusinessIncomes(ctx, id)
	if err != nil {
		return nil, NewBusinessError("INCOME_LIST_FAILED", "Failed to list incomes", err)
	}
	return rows, nil
}
