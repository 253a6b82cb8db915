package appointment

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

func TestClassifyExecError(t *testing.T) {
	err := classifyExecError("Create", &pq.Error{Code: "23505", Constraint: "appointments_holding_slot_uniq"})
	assert.ErrorIs(t, err, ErrSlotTaken)

	err = classifyExecError("Find", &pq.Error{Code: "40001"})
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.True(t, txmanager.IsRetryable(err))

	err = classifyExecError("Delete", errors.New("connection reset"))
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrSlotTaken)
}

func TestClassifyScanError(t *testing.T) {
	assert.ErrorIs(t, classifyScanError("GetByID", errors.New("bad column")), ErrScanRow)
	assert.ErrorIs(t, classifyScanError("GetByID", &pq.Error{Code: "23505"}), ErrSlotTaken)
}
