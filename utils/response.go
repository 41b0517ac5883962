package utils

import "github.com/gin-gonic/gin"

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// User-facing messages.
const (
	MsgServerError        = "요청을 처리하는 중 오류가 발생했습니다."
	MsgInvalidPayload     = "요청 형식이 올바르지 않습니다."
	MsgLoginFieldsMissing = "이름과 로그인 코드를 입력해주세요."
	MsgLoginFailed        = "이름 또는 로그인 코드가 올바르지 않습니다."
	MsgUnauthorized       = "로그인이 필요합니다."
	MsgTeacherOnly        = "교사만 게시물을 삭제할 수 있습니다."
	MsgRateLimited        = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요."
	MsgFolderNameRequired = "폴더 이름을 입력해주세요."
	MsgFolderNotFound     = "폴더를 찾을 수 없습니다."
	MsgInvalidFolderID    = "폴더 ID가 올바르지 않습니다."
	MsgPostFieldsMissing  = "작성자 이름과 날짜를 입력해주세요."
	MsgInvalidDate        = "날짜 형식이 올바르지 않습니다."
	MsgInvalidPostID      = "게시물 ID가 올바르지 않습니다."
	MsgPostNotFound       = "게시물을 찾을 수 없습니다."
	MsgCommentFields      = "작성자 이름, 내용, 날짜를 모두 입력해주세요."
	MsgNoFile             = "업로드할 파일이 없습니다."
	MsgUploadFailed       = "파일 업로드에 실패했습니다."
	MsgRouteNotFound      = "요청한 API를 찾을 수 없습니다."
)

// JSON writes data as the response body with the given status.
func JSON(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, data)
}

// Success writes a 200 response.
func Success(ctx *gin.Context, data interface{}) {
	JSON(ctx, 200, data)
}

// Created writes a 201 response.
func Created(ctx *gin.Context, data interface{}) {
	JSON(ctx, 201, data)
}

// Error returns a standard error response.
func Error(ctx *gin.Context, status int, code int, message string) {
	ctx.JSON(status, ErrorResponse{Code: code, Error: message})
}
