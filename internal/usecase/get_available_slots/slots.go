package get_available_slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/conflict"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// slotsFor разворачивает окна приема в 30-минутные слоты и отмечает занятые
//
// Слот выдается, пока его начало раньше конца окна:
// окно 09:00-13:00 дает 8 слотов (09:00 ... 12:30), окно 09:00-10:15 дает 09:00, 09:30 и 10:00
//
// Слот занят, если на (врач, дата, время) есть запись в статусе из
// policy.SlotBlockingStates()
func slotsFor(
	windows []*domain.AvailabilityWindow,
	date time.Time,
	existing []*domain.Appointment,
	policy conflict.Policy,
) ([]domain.Slot, error) {
	type slotID struct {
		doctorID int64
		time     types.TimeString
	}

	seen := make(map[slotID]struct{})
	slots := make([]domain.Slot, 0)

	for _, w := range windows {
		times, err := w.SlotTimes()
		if err != nil {
			return nil, err
		}

		for _, t := range times {
			// пересекающиеся окна одного врача не должны давать дубликаты
			id := slotID{doctorID: w.DoctorID, time: t}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}

			key := domain.SlotKey{DoctorID: w.DoctorID, Date: date, Time: t}
			slots = append(slots, domain.Slot{
				Time:      t,
				DoctorID:  w.DoctorID,
				Available: !conflict.IsSlotBlocked(policy, key, existing),
			})
		}
	}

	sortSlots(slots)
	return slots, nil
}

// sortSlots сортирует по времени, затем по врачу
// "HH:MM" сортируется лексикографически так же, как по времени
func sortSlots(slots []domain.Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Time != slots[j].Time {
			return slots[i].Time < slots[j].Time
		}
		return slots[i].DoctorID < slots[j].DoctorID
	})
}

// uniqueByTime схлопывает слоты нескольких врачей в один слот на время
// Время доступно, если свободен хотя бы один врач
// Ожидает слоты, отсортированные sortSlots
func uniqueByTime(slots []domain.Slot) []domain.Slot {
	result := make([]domain.Slot, 0, len(slots))

	for _, s := range slots {
		last := len(result) - 1
		if last >= 0 && result[last].Time == s.Time {
			result[last].Available = result[last].Available || s.Available
			continue
		}
		result = append(result, domain.Slot{Time: s.Time, Available: s.Available})
	}

	return result
}
