package matrix

import (
	"regexp"
	"strconv"
)

// AnswerSlot holds the result of the last computation on the service side.
const AnswerSlot = "ans"

// InputSlots are the slots a user can write to.
var InputSlots = []string{"1", "2", "3", "4", "5", "6", "7"}

// DisplaySlots are the slots the display screen can show.
var DisplaySlots = append([]string{AnswerSlot}, InputSlots...)

var autoNameRe = regexp.MustCompile(`^Matrix_[A-G]$`)

// IsSlot reports whether id is one of DisplaySlots.
func IsSlot(id string) bool {
	for _, s := range DisplaySlots {
		if s == id {
			return true
		}
	}
	return false
}

// SlotNumber returns the numeric id of an input slot, 0 if id is not one.
func SlotNumber(id string) int {
	n, err := strconv.Atoi(id)
	if err != nil || n < 1 || n > len(InputSlots) {
		return 0
	}
	return n
}

// AutoName returns Matrix_A for slot 1 through Matrix_G for slot 7.
func AutoName(slot int) string {
	if slot < 1 || slot > len(InputSlots) {
		return ""
	}
	return "Matrix_" + string(rune('A'+slot-1))
}

// IsAutoName reports whether name has the generated Matrix_<letter> form.
func IsAutoName(name string) bool {
	return autoNameRe.MatchString(name)
}
