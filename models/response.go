package models

// Response codes.
const (
	// success
	CodeSuccess = 0

	// client errors (1000-1999)
	CodeInvalidParams   = 1000 // invalid parameter
	CodeMissingParams   = 1001 // missing required parameter
	CodeUserNotFound    = 1002 // user does not exist
	CodePinNotFound     = 1003 // pin does not exist
	CodeForbidden       = 1004 // not the owner of the resource
	CodeNoRecommendData = 1005 // no recommendation data

	// server errors (2000-2999)
	CodeServerError       = 2000 // internal server error
	CodeDatabaseError     = 2001 // database error
	CodeExtractError      = 2002 // keyword extraction error
	CodeRecommendGenError = 2003 // recommendation error
)

// Messages for each response code.
var CodeMessages = map[int]string{
	CodeSuccess:           "success",
	CodeInvalidParams:     "invalid parameter",
	CodeMissingParams:     "missing required parameter",
	CodeUserNotFound:      "user not found",
	CodePinNotFound:       "pin not found",
	CodeForbidden:         "forbidden",
	CodeNoRecommendData:   "no recommendation data",
	CodeServerError:       "internal server error",
	CodeDatabaseError:     "database error",
	CodeExtractError:      "keyword extraction failed",
	CodeRecommendGenError: "recommendation failed",
}

// NewSuccessResponse builds a success envelope.
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Code:    CodeSuccess,
		Message: CodeMessages[CodeSuccess],
		Data:    data,
	}
}

// NewErrorResponse builds an error envelope from a known code.
func NewErrorResponse(code int, data interface{}) APIResponse {
	message, exists := CodeMessages[code]
	if !exists {
		message = "unknown error"
	}
	return APIResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// NewCustomErrorResponse builds an error envelope with a caller message.
func NewCustomErrorResponse(code int, message string, data interface{}) APIResponse {
	return APIResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}
