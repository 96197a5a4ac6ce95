// file: internals/features/finance/payments/service/midtrans_service.go
package service

import (
	"errors"
	"os"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	studentModel "asramaku_backend/internals/features/dormitory/students/model"
	"asramaku_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Midtrans Client
========================================================= */

var SnapClient snap.Client

// InitMidtrans dipanggil sekali saat bootstrap app.
// MIDTRANS_PRODUCTION=true untuk environment Production, selain itu Sandbox.
func InitMidtrans(serverKey string) {
	if strings.EqualFold(os.Getenv("MIDTRANS_PRODUCTION"), "true") {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
}

/* =========================================================
   Generate Snap Token untuk pelunasan tunggakan
========================================================= */

func GenerateSnapToken(p *model.PaymentTransactionModel, st *studentModel.StudentModel) (string, string, error) {
	amount := p.PaymentTransactionAmount.IntPart()
	if amount <= 0 {
		return "", "", errors.New("nominal pembayaran tidak valid")
	}
	if p.PaymentTransactionExternalID == nil || *p.PaymentTransactionExternalID == "" {
		return "", "", errors.New("external_id wajib terisi (dipakai sebagai OrderID)")
	}

	cust := snapCustomer(st)
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  *p.PaymentTransactionExternalID,
			GrossAmt: amount,
		},
		CustomerDetail: &cust,
		Items: &[]midtrans.ItemDetails{
			{
				ID:       *p.PaymentTransactionExternalID,
				Price:    amount,
				Qty:      1,
				Name:     "Pelunasan tunggakan asrama",
				Category: "Tunggakan",
			},
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

func snapCustomer(st *studentModel.StudentModel) midtrans.CustomerDetails {
	phone := ""
	if st.StudentPhone != nil {
		phone = *st.StudentPhone
	}
	return midtrans.CustomerDetails{
		FName: st.StudentFullName,
		Phone: phone,
	}
}
