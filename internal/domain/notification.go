package domain

// QueueMessage is the envelope published to the notifications queue. To is
// either an email address or an Expo push token depending on the type.
type QueueMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type ShiftAssignedPushData struct {
	EmployeeName string `json:"employeeName"`
	ShiftName    string `json:"shiftName"`
	Day          DayKey `json:"day"`
	DSPCode      string `json:"dsp_code"`
}

type DecisionPushData struct {
	EmployeeName string   `json:"employeeName"`
	ShiftName    string   `json:"shiftName"`
	Day          DayKey   `json:"day"`
	Decision     Decision `json:"decision"`
	DSPCode      string   `json:"dsp_code"`
}

type PublishReportMailData struct {
	FullName string `json:"fullName"`
	DSPCode  string `json:"dsp_code"`
	Accepted int    `json:"accepted"`
	Rejected int    `json:"rejected"`
	Failed   int    `json:"failed"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type ChangeEmailMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}
