package ledger

import "fmt"

// PointAward is one grant of points with a free-form reason.
type PointAward struct {
	Amount int
	Reason string
}

// The fixed award table.
var (
	AwardChat             = PointAward{Amount: 10, Reason: "Academic Consultation"}
	AwardNotes            = PointAward{Amount: 15, Reason: "Academic Research"}
	AwardNoteCopied       = PointAward{Amount: 5, Reason: "Material Archiving"}
	AwardQuestionBank     = PointAward{Amount: 25, Reason: "Question Set Generated"}
	AwardQuestionRevealed = PointAward{Amount: 5, Reason: "Concept Review"}
	AwardDPP              = PointAward{Amount: 20, Reason: "Resource Preparation"}
	AwardDPPRevealed      = PointAward{Amount: 10, Reason: "Problem Mastery"}
	AwardAnswerKey        = PointAward{Amount: 5, Reason: "Reviewing Solutions"}
)

// AwardTableEntry describes when an award is granted.
type AwardTableEntry struct {
	Action string
	Award  PointAward
}

// AwardTable lists every fixed award.
func AwardTable() []AwardTableEntry {
	return []AwardTableEntry{
		{"Every 2nd chat exchange", AwardChat},
		{"Notes fetched", AwardNotes},
		{"Note copied", AwardNoteCopied},
		{"Question bank set generated", AwardQuestionBank},
		{"Question solution revealed", AwardQuestionRevealed},
		{"DPP set generated", AwardDPP},
		{"DPP solution revealed", AwardDPPRevealed},
		{"Answer key fetched", AwardAnswerKey},
	}
}

// ChatAward returns the chat award when exchanges is a positive even
// number.
func ChatAward(exchanges int) (PointAward, bool) {
	if exchanges > 0 && exchanges%2 == 0 {
		return AwardChat, true
	}
	return PointAward{}, false
}

// Award adds a positive amount to the profile's points. The reason is a
// free-form label and is not checked.
func Award(p Profile, a PointAward) (Profile, error) {
	if a.Amount <= 0 {
		return p, fmt.Errorf("award amount must be positive, got %d", a.Amount)
	}
	p.Points += a.Amount
	return p, nil
}
