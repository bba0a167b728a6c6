package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Operation is the card lifecycle event CCMS reports in a callback
type Operation int

const (
	OperationCreate      Operation = 1
	OperationUpdate      Operation = 2
	OperationDelete      Operation = 3
	OperationPrint       Operation = 4
	OperationRevoke      Operation = 5
	OperationCallback    Operation = 6
	OperationRevokeCert  Operation = 7
	OperationResetCard   Operation = 8
	OperationRenewCert   Operation = 9
	OperationUnblockCard Operation = 10
	OperationPrePrint    Operation = 11
	OperationPreSave     Operation = 12
	OperationResume      Operation = 13
	OperationSuspend     Operation = 14
)

var operationNames = map[Operation]string{
	OperationCreate:      "CREATE",
	OperationUpdate:      "UPDATE",
	OperationDelete:      "DELETE",
	OperationPrint:       "PRINT",
	OperationRevoke:      "REVOKE",
	OperationCallback:    "CALLBACK",
	OperationRevokeCert:  "REVOKE_CERT",
	OperationResetCard:   "RESET_CARD",
	OperationRenewCert:   "RENEW_CERT",
	OperationUnblockCard: "UNBLOCK_CARD",
	OperationPrePrint:    "PRE_PRINT",
	OperationPreSave:     "PRE_SAVE",
	OperationResume:      "RESUME",
	OperationSuspend:     "SUSPEND",
}

// String returns the CCMS name of the operation, or the number for unknown codes
func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return strconv.Itoa(int(o))
}

// Known reports whether o is one of the CCMS operation codes
func (o Operation) Known() bool {
	_, ok := operationNames[o]
	return ok
}

// IsCreateOrUpdate reports whether the operation writes card data to the backends
func (o Operation) IsCreateOrUpdate() bool {
	switch o {
	case OperationCreate, OperationUpdate, OperationPrint:
		return true
	default:
		return false
	}
}

// ParseOperation accepts either the numeric code or the name (case-insensitive)
func ParseOperation(s string) (Operation, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		op := Operation(n)
		if !op.Known() {
			return 0, fmt.Errorf("unknown operation code %d", n)
		}
		return op, nil
	}

	upper := strings.ToUpper(s)
	for op, name := range operationNames {
		if name == upper {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown operation %q", s)
}
