package smsservices

import (
	"github.com/pkg/errors"
	"github.com/techagentng/wayvee/config"
	"github.com/twilio/twilio-go"
	verify "github.com/twilio/twilio-go/rest/verify/v2"
)

// OTPSender starts and checks phone number verifications.
type OTPSender interface {
	StartVerification(phoneNumber string) error
	CheckVerification(phoneNumber, code string) (bool, error)
}

type Twilio struct {
	client     *twilio.RestClient
	serviceSID string
}

func NewTwilio(conf *config.Config) *Twilio {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: conf.TwilioAccountSID,
		Password: conf.TwilioAuthToken,
	})
	return &Twilio{
		client:     client,
		serviceSID: conf.TwilioServiceSID,
	}
}

func (t *Twilio) StartVerification(phoneNumber string) error {
	params := &verify.CreateVerificationParams{}
	params.SetTo(phoneNumber)
	params.SetChannel("sms")

	_, err := t.client.VerifyV2.CreateVerification(t.serviceSID, params)
	if err != nil {
		return errors.Wrap(err, "could not start phone verification")
	}
	return nil
}

func (t *Twilio) CheckVerification(phoneNumber, code string) (bool, error) {
	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(phoneNumber)
	params.SetCode(code)

	resp, err := t.client.VerifyV2.CreateVerificationCheck(t.serviceSID, params)
	if err != nil {
		return false, errors.Wrap(err, "could not check phone verification")
	}
	return resp.Status != nil && *resp.Status == "approved", nil
}
