package response

import "net/http"

// 业务错误码
const (
	// 失败
	Fail ResponseCode = 0
	// 参数解析错误
	ParseError ResponseCode = 1
	// 参数错误
	InvalidParameter ResponseCode = 2
	// 未认证
	Unauthorized ResponseCode = 3
	// 无权限
	Forbidden ResponseCode = 4
	// 资源不存在
	NotFound ResponseCode = 5
	// 请求过于频繁
	TooManyRequests ResponseCode = 6
)

// HTTPStatus 业务错误码到 HTTP 状态码的映射
// 未知错误码按通用失败处理，返回 500
func HTTPStatus(code ResponseCode) int {
	switch code {
	case Success:
		return http.StatusOK
	case ParseError, InvalidParameter:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case TooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

type BusinessError struct {
	Code ResponseCode
	Msg  string
	Err  error
}

func (e *BusinessError) Error() string {
	return e.Msg
}

type ErrorOption func(*BusinessError)

func WithErrorCode(code ResponseCode) ErrorOption {
	return func(be *BusinessError) {
		be.Code = code
	}
}

func WithErrorMessage(msg string) ErrorOption {
	return func(be *BusinessError) {
		be.Msg = msg
	}
}

func WithError(err error) ErrorOption {
	return func(be *BusinessError) {
		be.Err = err
	}
}

func NewBusinessError(opts ...ErrorOption) *BusinessError {
	err := &BusinessError{
		Code: Fail,
		Msg:  "business error",
		Err:  nil,
	}
	for _, opt := range opts {
		opt(err)
	}
	return err
}
