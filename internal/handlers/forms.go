package handlers

// Form bindings for the HTML views. Post and comment field validation
// lives in the content service; the auth forms are validated here the
// same way the service would have to repeat it anyway.

// RegisterForm is the registration form submission.
type RegisterForm struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// LoginForm is the login form submission.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// PostForm is the create/edit post form submission.
type PostForm struct {
	Title    string `form:"title"`
	Subtitle string `form:"subtitle"`
	ImageURL string `form:"img_url"`
	Body     string `form:"body"`
}

// CommentForm is the comment form submission on the post detail view.
type CommentForm struct {
	Comment string `form:"comment"`
}
