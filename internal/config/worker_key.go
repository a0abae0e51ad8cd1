package config

type WorkerKeyStruct struct {
	PaymentConfirmQueue string
}

var WorkerKey = &WorkerKeyStruct{
	PaymentConfirmQueue: "payment_confirm_queue",
}
