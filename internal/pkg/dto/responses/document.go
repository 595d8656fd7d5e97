package responses

type DocumentUploaded struct {
	FileName string `json:"file_name"`
	URL      string `json:"url"`
}
