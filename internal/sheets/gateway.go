// internal/sheets/gateway.go
package sheets

import (
    "fmt"
    "sync"
)

// Row is one spreadsheet line, column-indexed.
type Row []string

// Column layout of the legacy calendar tab. One row = one
// (business, month, creator) triple.
const (
    ColBusiness = iota
    ColMes
    ColInfluenciador
    ColStatusCalendario
    ColBriefingCompleto
    ColDataHoraVisita
    ColQuantidadeConvidados
    ColVisitaConfirmado
    ColVideoAprovado
    ColVideoPostado
    ColVideoInstagramLink
    ColVideoTiktokLink

    RowWidth
)

// "Status do Calendário" values — the legacy soft-delete mechanism.
const (
    StatusAtivo   = "Ativo"
    StatusInativo = "Inativo"
)

// Default tab names.
const (
    CalendarTab = "Calendário"
    AuditTab    = "Audit_Log"
)

// Gateway is the minimal sheet surface the legacy locator needs. The
// production implementation wraps the spreadsheet API; InMemorySheet backs
// the tests.
type Gateway interface {
    ReadRows(tab string) ([]Row, error)
    UpdateRow(tab string, rowIndex int, row Row) error
    AppendRow(tab string, row Row) error
}

// InMemorySheet stores tabs in memory.
type InMemorySheet struct {
    mu   sync.Mutex
    tabs map[string][]Row
}

func NewInMemorySheet() *InMemorySheet {
    return &InMemorySheet{tabs: make(map[string][]Row)}
}

func (s *InMemorySheet) ReadRows(tab string) ([]Row, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    rows := make([]Row, len(s.tabs[tab]))
    for i, r := range s.tabs[tab] {
        cp := make(Row, len(r))
        copy(cp, r)
        rows[i] = cp
    }
    return rows, nil
}

func (s *InMemorySheet) UpdateRow(tab string, rowIndex int, row Row) error {
    s.mu.Lock()
    defer s.mu.Unlock()

    if rowIndex < 0 || rowIndex >= len(s.tabs[tab]) {
        return fmt.Errorf("row %d out of range for tab %s", rowIndex, tab)
    }
    cp := make(Row, len(row))
    copy(cp, row)
    s.tabs[tab][rowIndex] = cp
    return nil
}

func (s *InMemorySheet) AppendRow(tab string, row Row) error {
    s.mu.Lock()
    defer s.mu.Unlock()

    cp := make(Row, len(row))
    copy(cp, row)
    s.tabs[tab] = append(s.tabs[tab], cp)
    return nil
}

var _ Gateway = (*InMemorySheet)(nil)
