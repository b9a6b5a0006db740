// Package export writes chat history and project stats to spreadsheet
// files for offline review.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/notelm-client/internal/core/domain"
)

const historySheet = "Chat History"

var historyHeader = []string{"Asked At", "Question", "Answer", "Tokens Used", "Sources", "Rating"}

// ChatHistoryWorkbook builds an .xlsx workbook from the exchanges, newest
// first as the backend returns them.
func ChatHistoryWorkbook(project domain.Project, history domain.ChatHistory) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", historySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := setRow(f, 1, []any{fmt.Sprintf("Project: %s (#%d)", project.Title, project.ID)}); err != nil {
		return nil, err
	}
	header := make([]any, len(historyHeader))
	for i, h := range historyHeader {
		header[i] = h
	}
	if err := setRow(f, 3, header); err != nil {
		return nil, err
	}

	for i, chat := range history.Chats {
		rating := ""
		if chat.Rating != nil {
			rating = fmt.Sprintf("%d", *chat.Rating)
		}
		row := []any{
			chat.CreatedAt.Format(time.RFC3339),
			chat.Message,
			chat.Response,
			chat.TokensUsed,
			fmt.Sprintf("%v", chat.Sources),
			rating,
		}
		if err := setRow(f, 4+i, row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// WriteChatHistory saves the workbook to path.
func WriteChatHistory(path string, project domain.Project, history domain.ChatHistory) error {
	f, err := ChatHistoryWorkbook(project, history)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(historySheet, cell, value); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
