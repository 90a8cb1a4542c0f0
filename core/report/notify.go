package report

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/finance"
)

// SendOverdueReminders emails each parent a reminder of their child's overdue
// payments. Reminders are skipped entirely when email notifications are
// disabled in the school settings, or when the parent has no email on file.
// Returns the number of reminders handed to the email service; sending itself
// is fire-and-forget.
func (svc *Service) SendOverdueReminders() int {
	setts := svc.settings.Settings()
	if !setts.EmailNotifications {
		return 0
	}

	// group overdue payments per student
	overdue := make(map[string][]finance.Payment)
	for _, pmt := range svc.finances.OverduePayments() {
		overdue[pmt.StudentID] = append(overdue[pmt.StudentID], pmt)
	}
	if len(overdue) == 0 {
		return 0
	}

	currency := setts.Currency
	if currency == "" {
		currency = "FCFA"
	}

	messages := make([]*core.EmailMessage, 0, len(overdue))
	for studentID, payments := range overdue {
		std, err := svc.students.Get(studentID)
		if err != nil || std.ParentEmail == "" {
			continue
		}

		var body strings.Builder
		fmt.Fprintf(&body, "Bonjour %s,\n\n", std.ParentName)
		fmt.Fprintf(&body, "Les paiements suivants pour %s %s sont en retard :\n\n", std.FirstName, std.LastName)
		var total float64
		for _, pmt := range payments {
			fmt.Fprintf(&body, "- %s : %.0f %s", pmt.Type, pmt.Amount, currency)
			if pmt.DueDate.Valid {
				fmt.Fprintf(&body, " (échéance %s)", pmt.DueDate.Time.Format("02/01/2006"))
			}
			body.WriteString("\n")
			total += pmt.Amount
		}
		fmt.Fprintf(&body, "\nTotal dû : %.0f %s\n\n", total, currency)
		fmt.Fprintf(&body, "Merci de régulariser la situation auprès de %s.\n", setts.Name)

		messages = append(messages, &core.EmailMessage{
			To:          []mail.Address{{Name: std.ParentName, Address: std.ParentEmail}},
			Subject:     "Rappel de paiement",
			TextContent: body.String(),
		})
	}

	svc.mailSvc.SendMessages(messages...)
	return len(messages)
}
