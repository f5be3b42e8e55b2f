package mapping

import (
	"github.com/finanzap/finanzap_backend/internal/core/domain"
	"github.com/finanzap/finanzap_backend/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelPosting converts a domain Posting to a model Posting, flattening the
// installment metadata into nullable columns.
func ToModelPosting(d domain.Posting) models.Posting {
	m := models.Posting{
		PostingID:     d.PostingID,
		TenantID:      d.TenantID,
		UserID:        d.UserID,
		Kind:          string(d.Kind),
		Date:          d.Date,
		Amount:        d.Amount,
		CurrencyCode:  d.CurrencyCode,
		BaseAmount:    d.BaseAmount,
		CategoryID:    d.CategoryID,
		EntityID:      d.EntityID,
		PaymentMethod: d.PaymentMethod,
		Notes:         d.Notes,
		Status:        string(d.Status),
		Source:        string(d.Source),
		Deleted:       d.Deleted,
		Fingerprint:   d.Fingerprint,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.SubcategoryID != "" {
		m.SubcategoryID = &d.SubcategoryID
	}
	if d.Installment != nil {
		count := d.Installment.Count
		index := d.Installment.Index
		m.InstallmentCount = &count
		m.InstallmentIndex = &index
		if d.Installment.CardKind != "" {
			cardKind := d.Installment.CardKind
			m.CardKind = &cardKind
		}
	}
	return m
}

// ToDomainPosting converts a model Posting to a domain Posting, folding the
// installment columns back into the nested struct.
func ToDomainPosting(m models.Posting) domain.Posting {
	d := domain.Posting{
		PostingID:     m.PostingID,
		TenantID:      m.TenantID,
		UserID:        m.UserID,
		Kind:          domain.PostingKind(m.Kind),
		Date:          m.Date,
		Amount:        m.Amount,
		CurrencyCode:  m.CurrencyCode,
		BaseAmount:    m.BaseAmount,
		CategoryID:    m.CategoryID,
		EntityID:      m.EntityID,
		PaymentMethod: m.PaymentMethod,
		Notes:         m.Notes,
		Status:        domain.PostingStatus(m.Status),
		Source:        domain.PostingSource(m.Source),
		Deleted:       m.Deleted,
		Fingerprint:   m.Fingerprint,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.SubcategoryID != nil {
		d.SubcategoryID = *m.SubcategoryID
	}
	if m.InstallmentCount != nil && m.InstallmentIndex != nil {
		info := &domain.InstallmentInfo{
			Count: *m.InstallmentCount,
			Index: *m.InstallmentIndex,
		}
		if m.CardKind != nil {
			info.CardKind = *m.CardKind
		}
		d.Installment = info
	}
	return d
}

// ToDomainPostings converts a slice of model Postings.
func ToDomainPostings(ms []models.Posting) []domain.Posting {
	out := make([]domain.Posting, len(ms))
	for i := range ms {
		out[i] = ToDomainPosting(ms[i])
	}
	return out
}
