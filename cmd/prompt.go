package cmd

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/text/message"

	"github.com/ginjaninja78/mailing-converter/internal/config"
	"github.com/ginjaninja78/mailing-converter/internal/validation"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("aborted")

// promptRunSettings asks whether to create addresses only or invoices too,
// and for the QR-IBAN of an invoicing run. The configured account is offered
// as the default.
func promptRunSettings(p *message.Printer, cfg *config.MainConfig) error {
	addresses := p.Sprintf("Addresses only")
	invoices := p.Sprintf("Addresses and invoices")

	mode := addresses
	if cfg.Account != "" {
		mode = invoices
	}

	if err := survey.AskOne(&survey.Select{
		Message: p.Sprintf("What do you want to create?"),
		Options: []string{addresses, invoices},
		Default: mode,
	}, &mode); err != nil {
		return translateSurveyErr(err)
	}

	if mode == addresses {
		cfg.Account = ""
		return nil
	}

	var account string
	if err := survey.AskOne(&survey.Input{
		Message: p.Sprintf("QR-IBAN of the receiving account:"),
		Default: cfg.Account,
	}, &account, survey.WithValidator(accountValidator(p))); err != nil {
		return translateSurveyErr(err)
	}

	cfg.Account = validation.NormalizeAccount(account)
	return nil
}

// accountValidator adapts ValidateQRIBAN to survey, with localized messages.
func accountValidator(p *message.Printer) survey.Validator {
	return func(ans interface{}) error {
		s, _ := ans.(string)
		if err := validation.ValidateQRIBAN(s); err != nil {
			return errors.New(describeError(p, err))
		}
		return nil
	}
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
