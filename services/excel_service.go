// services/excel_service.go
package services

import (
	"fmt"
	"time"

	"github.com/evenly-app/evenly-backend/models"
	"github.com/evenly-app/evenly-backend/utils"
	"github.com/xuri/excelize/v2"
)

// ExcelService handles Excel export functionality
type ExcelService struct {
	receiptService *ReceiptService
	settlement     *SettlementService
}

// NewExcelService creates a new Excel service
func NewExcelService(receiptService *ReceiptService, settlement *SettlementService) *ExcelService {
	return &ExcelService{
		receiptService: receiptService,
		settlement:     settlement,
	}
}

// ExportGroupToExcel generates a settlement workbook for a group
func (s *ExcelService) ExportGroupToExcel(groupID string) (*excelize.File, string, error) {
	group, err := GetGroup(groupID)
	if err != nil {
		return nil, "", err
	}

	receipts, err := s.receiptService.GetGroupReceipts(groupID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()

	if err := s.createSummarySheet(f, group, receipts); err != nil {
		return nil, "", fmt.Errorf("failed to create summary sheet: %v", err)
	}
	if err := s.createReceiptSheet(f, group, receipts); err != nil {
		return nil, "", fmt.Errorf("failed to create receipt sheet: %v", err)
	}
	if err := s.createDebtSheet(f, group, receipts); err != nil {
		return nil, "", fmt.Errorf("failed to create debt sheet: %v", err)
	}

	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("%s_Export_%s.xlsx",
		utils.CleanFileName(group.Name),
		time.Now().Format("2006-01-02"))

	return f, filename, nil
}

// createSummarySheet writes per-member totals across all receipts
func (s *ExcelService) createSummarySheet(f *excelize.File, group *models.Group, receipts []*models.Receipt) error {
	sheetName := "Summary"
	f.NewSheet(sheetName)
	sheetIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIndex)

	headers := []string{"Member", "Consumption", "Owed", "Paid"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", string(rune('A'+len(headers)-1))), headerStyle)

	for i, member := range group.Members {
		var consumption, owed, paid float64
		for _, receipt := range receipts {
			consumption += s.settlement.MemberConsumptionSubtotal(member.ID, receipt.Items)
			owed += s.settlement.MemberOwedTotal(member.ID, receipt)
			paid += s.settlement.MemberPaidTotal(member.ID, receipt)
		}

		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), member.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), utils.Round(consumption))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), utils.Round(owed))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), utils.Round(paid))
	}

	return nil
}

// createReceiptSheet writes one row per receipt with totals and paid progress
func (s *ExcelService) createReceiptSheet(f *excelize.File, group *models.Group, receipts []*models.Receipt) error {
	sheetName := "Receipts"
	f.NewSheet(sheetName)

	memberNames := make(map[string]string, len(group.Members))
	for _, member := range group.Members {
		memberNames[member.ID] = member.Name
	}

	headers := []string{"Date", "Receipt", "Paid To", "Subtotal", "Total", "Paid %"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", string(rune('A'+len(headers)-1))), headerStyle)

	for i, receipt := range receipts {
		row := i + 2
		owner := memberNames[receipt.PaidTo]
		if owner == "" {
			owner = receipt.PaidTo
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row),
			time.UnixMilli(receipt.CreationTime).Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), receipt.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), owner)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), utils.Round(s.settlement.ReceiptSubtotal(receipt)))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), s.settlement.ReceiptTotal(receipt))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), s.settlement.ReceiptPaidPercentage(receipt))
	}

	return nil
}

// createDebtSheet writes the outstanding who-pays-whom entries
func (s *ExcelService) createDebtSheet(f *excelize.File, group *models.Group, receipts []*models.Receipt) error {
	sheetName := "Debts"
	f.NewSheet(sheetName)

	memberNames := make(map[string]string, len(group.Members))
	for _, member := range group.Members {
		memberNames[member.ID] = member.Name
	}

	headers := []string{"From", "To", "Amount"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", "C1", headerStyle)

	// AggregateDebts only emits pairs of current members, so the name lookup
	// cannot miss
	debts := s.settlement.AggregateDebts(receipts, group.Members)
	for i, debt := range debts {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), memberNames[debt.FromMemberID])
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), memberNames[debt.ToMemberID])
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), debt.Amount)
	}

	return nil
}
