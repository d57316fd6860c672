package logging

const (
	// FieldError can be used instead of Err(err) if you have only the error message string.
	FieldError = "err"

	FieldComponent = "component"
	FieldChainId   = "chainId"

	FieldDuration = "duration"
	FieldUrl      = "url"

	FieldGatewayMethod = "gatewayMethod"
	FieldGatewayPath   = "gatewayPath"

	FieldTxHash   = "txHash"
	FieldTxNonce  = "txNonce"
	FieldTxStatus = "txStatus"
	FieldTxFrom   = "txFrom"
	FieldTxTo     = "txTo"

	FieldEndpoint    = "endpoint"
	FieldCallKind    = "callKind"
	FieldContract    = "contract"
	FieldStateFile   = "stateFile"
	FieldTokenId     = "tokenId"
	FieldAttempt     = "attempt"
	FieldReturnCode  = "returnCode"
	FieldGasLimit    = "gasLimit"
	FieldArgsCount   = "argsCount"
	FieldPaymentKind = "paymentKind"
)
