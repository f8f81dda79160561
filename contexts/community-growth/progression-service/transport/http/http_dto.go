package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AttachmentDTO struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type,omitempty"`
	SizeBytes   int64  `json:"size_bytes,omitempty"`
}

type WebhookActivityRequest struct {
	ProjectID   string          `json:"project_id"`
	MessageID   string          `json:"message_id"`
	AuthorID    string          `json:"author_id,omitempty"`
	ChannelID   string          `json:"channel_id,omitempty"`
	Content     string          `json:"content"`
	MemberCount *int            `json:"member_count,omitempty"`
	Attachments []AttachmentDTO `json:"attachments,omitempty"`
}

type MetricsDTO struct {
	ProjectID     string `json:"project_id"`
	Level         int    `json:"level"`
	MemberCount   int    `json:"member_count"`
	MessagesCount int    `json:"messages_count"`
	PapersShared  int    `json:"papers_shared"`
	QualityScore  int    `json:"quality_score"`
	BotLinked     bool   `json:"bot_linked"`
	Verified      bool   `json:"verified"`
	CommunityID   string `json:"community_id,omitempty"`
	CommunityName string `json:"community_name,omitempty"`
}

type TriggerResponse struct {
	Status string `json:"status"`
	Data   struct {
		Advanced   bool       `json:"advanced"`
		FromLevel  int        `json:"from_level"`
		ToLevel    int        `json:"to_level"`
		Category   string     `json:"category,omitempty"`
		Confidence int        `json:"confidence,omitempty"`
		Metrics    MetricsDTO `json:"metrics"`
	} `json:"data"`
}

type MetricsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Metrics         MetricsDTO `json:"metrics"`
		NextRequirement string     `json:"next_requirement"`
	} `json:"data"`
}

type RegisterCommunityRequest struct {
	InviteURL string `json:"invite_url"`
}

type RegisterCommunityResponse struct {
	Status string `json:"status"`
	Data   struct {
		Metrics MetricsDTO `json:"metrics"`
	} `json:"data"`
}
