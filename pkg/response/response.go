package response

// Pagination carries page metadata for list responses.
type Pagination struct {
	Page            int   `json:"page"`
	PageSize        int   `json:"pageSize"`
	TotalCount      int64 `json:"totalCount"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type PaginatedResponse struct {
	Success    bool       `json:"success"`
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   any    `json:"error,omitempty"`
}

func Success(data any) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Data:    data,
	}
}

func Paginated(data any, pagination Pagination) PaginatedResponse {
	return PaginatedResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	}
}

func Error(message string, errDetail any) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Message: message,
		Error:   errDetail,
	}
}
