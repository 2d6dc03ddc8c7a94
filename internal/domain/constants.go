package domain

// Default schedule values used when an organization never saved its settings
const (
	DefaultStartHour         = 9
	DefaultEndHour           = 18
	DefaultSlotMinuteOffset  = 0
	DefaultMaxEntriesPerSlot = 1
	DefaultCancelLeadHours   = 0 // 0 = unlimited
)

// Business validation constants
const (
	MinHour              = 0
	MaxHour              = 23
	MaxSlotMinuteOffset  = 59
	MinEntriesPerSlot    = 1
	MaxEntriesPerSlot    = 100
	MaxCancelLeadHours   = 720 // 30 days
	MaxCommentLength     = 500
	MaxUserDisplayLength = 255
	MaxMonthDays         = 31
	MaxWeekDays          = 7
)

// DateLayout is the fixed-width DD.MM.YYYY format exchanged with collaborators
const DateLayout = "02.01.2006"

// DefaultWorkingDays Monday to Friday
var DefaultWorkingDays = []WeekdayCode{Mon, Tue, Wed, Thu, Fri}
