package domain

type MeetingType string

const (
	MeetingTypeMeeting MeetingType = "meeting"
	MeetingTypeWebinar MeetingType = "webinar"
)

// BaselineMeetingType applies whenever a meeting has no stored metadata.
const BaselineMeetingType = MeetingTypeMeeting

var ValidMeetingTypes = []MeetingType{MeetingTypeMeeting, MeetingTypeWebinar}

func IsValidMeetingType(t MeetingType) bool {
	for _, v := range ValidMeetingTypes {
		if v == t {
			return true
		}
	}
	return false
}

// MeetingMetadata is stored out-of-band, one record per meeting id.
type MeetingMetadata struct {
	CreatedBy string      `json:"createdBy"`
	HostToken string      `json:"hostToken"`
	Type      MeetingType `json:"type"`
}

type Role string

const (
	RoleHost        Role = "host"
	RoleParticipant Role = "participant"
)

// Presets maps a meeting type and role to the vendor preset name.
var Presets = map[MeetingType]map[Role]string{
	MeetingTypeMeeting: {
		RoleHost:        "group_call_host",
		RoleParticipant: "group_call_participant",
	},
	MeetingTypeWebinar: {
		RoleHost:        "webinar_presenter",
		RoleParticipant: "webinar_viewer",
	},
}

// PresetFor falls back to the baseline type for unknown meeting types.
func PresetFor(t MeetingType, r Role) string {
	byRole, ok := Presets[t]
	if !ok {
		byRole = Presets[BaselineMeetingType]
	}
	return byRole[r]
}
