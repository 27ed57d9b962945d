package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/segyhp/loan-intake/internal/domain"
	"github.com/segyhp/loan-intake/pkg/amocrm"
	customError "github.com/segyhp/loan-intake/pkg/errors"
)

// CRMGateway is the part of the amoCRM client the submission flow needs
type CRMGateway interface {
	CreateContact(ctx context.Context, contact amocrm.Contact) (int64, error)
	CreateLead(ctx context.Context, lead amocrm.Lead) (int64, error)
}

type CRMService struct {
	crm CRMGateway
}

func NewCRMService(crm CRMGateway) *CRMService {
	return &CRMService{crm: crm}
}

// SubmitLead pushes a computed application into the CRM as a contact and a
// lead referencing it, strictly in that order. The lead cannot exist without
// the contact, and a contact created before a failed lead call is left behind:
// there is no compensating delete.
func (s *CRMService) SubmitLead(ctx context.Context, request *domain.LeadSubmissionRequest) (*domain.LeadSubmissionResponse, error) {
	contact := amocrm.Contact{
		Name: request.FullName,
		CustomFieldsValues: []amocrm.CustomField{
			{
				FieldCode: "PHONE",
				Values:    []amocrm.FieldValue{{Value: request.Phone, EnumCode: "WORK"}},
			},
			{
				FieldCode: "EMAIL",
				Values:    []amocrm.FieldValue{{Value: request.Email, EnumCode: "WORK"}},
			},
		},
	}

	contactID, err := s.crm.CreateContact(ctx, contact)
	if err != nil {
		return nil, wrapCRMError(err)
	}

	lead := amocrm.Lead{
		Name:  fmt.Sprintf("Заявка на кредит %s руб. - %s", request.LoanAmount, request.FullName),
		Price: request.LoanAmount.IntPart(),
		CustomFieldsValues: []amocrm.CustomField{
			{FieldName: "Сумма кредита", Values: []amocrm.FieldValue{{Value: rubles(request.LoanAmount.String())}}},
			{FieldName: "Срок кредита", Values: []amocrm.FieldValue{{Value: fmt.Sprintf("%d мес.", request.LoanTerm)}}},
			{FieldName: "Ежемесячный платеж", Values: []amocrm.FieldValue{{Value: rubles(request.MonthlyPayment.String())}}},
			{FieldName: "Общая выплата", Values: []amocrm.FieldValue{{Value: rubles(request.TotalPayment.String())}}},
			{FieldName: "Доход", Values: []amocrm.FieldValue{{Value: rubles(request.Income.String())}}},
		},
		Embedded: &amocrm.LeadEmbedded{
			Contacts: []amocrm.ContactRef{{ID: contactID}},
		},
	}

	leadID, err := s.crm.CreateLead(ctx, lead)
	if err != nil {
		return nil, wrapCRMError(err)
	}

	return &domain.LeadSubmissionResponse{
		Success:   true,
		LeadID:    leadID,
		ContactID: contactID,
		Message:   "Lead successfully created in AmoCRM",
	}, nil
}

func rubles(value string) string {
	return value + " руб."
}

// wrapCRMError keeps CRM rejections intact so the boundary can mirror their
// status and body, and marks everything else as a transport failure.
func wrapCRMError(err error) error {
	var apiErr *amocrm.APIError
	if errors.As(err, &apiErr) {
		return err
	}
	return customError.WrapCRMUnreachable(err)
}
