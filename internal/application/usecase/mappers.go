package usecase

import (
	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
)

// ToUserResponse convierte la entidad a la salida HTTP (sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             u.ID,
		ExternalID:     u.ExternalID,
		OrganizationID: u.OrganizationID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		IsActive:       u.IsActive,
		JoinDate:       formatDate(u.JoinDate),
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func ToSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:             s.ID,
		OrganizationID: s.OrganizationID,
		UserID:         s.UserID,
		Client:         s.Client,
		Amount:         s.Amount,
		Status:         s.Status,
		Category:       s.Category,
		Details:        s.Details,
		Date:           formatDate(s.Date),
		CreatedAt:      s.CreatedAt,
	}
}

func ToSaleResponses(list []*entity.Sale) []dto.SaleResponse {
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		if s != nil {
			out = append(out, ToSaleResponse(s))
		}
	}
	return out
}

func ToMeetingResponse(m *entity.Meeting) dto.MeetingResponse {
	return dto.MeetingResponse{
		ID:              m.ID,
		OrganizationID:  m.OrganizationID,
		UserID:          m.UserID,
		Title:           m.Title,
		ClientName:      m.ClientName,
		Date:            formatDate(m.Date),
		Time:            m.Time,
		Type:            m.Type,
		Priority:        m.Priority,
		DurationMinutes: m.DurationMinutes,
		Notes:           m.Notes,
		Status:          m.Status,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func ToMeetingResponses(list []*entity.Meeting) []dto.MeetingResponse {
	out := make([]dto.MeetingResponse, 0, len(list))
	for _, m := range list {
		if m != nil {
			out = append(out, ToMeetingResponse(m))
		}
	}
	return out
}

func ToOrganizationResponse(o *entity.Organization) *dto.OrganizationResponse {
	if o == nil {
		return nil
	}
	return &dto.OrganizationResponse{
		ID:          o.ID,
		Name:        o.Name,
		Address:     o.Address,
		Industry:    o.Industry,
		Description: o.Description,
		Phone:       o.Phone,
		Email:       o.Email,
		Website:     o.Website,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func ToInvitedEmailResponse(i *entity.InvitedEmail) dto.InvitedEmailResponse {
	return dto.InvitedEmailResponse{
		ID:             i.ID,
		OrganizationID: i.OrganizationID,
		Email:          i.Email,
		InvitedBy:      i.InvitedBy,
		IsUsed:         i.IsUsed,
		UsedAt:         i.UsedAt,
		CreatedAt:      i.CreatedAt,
	}
}
